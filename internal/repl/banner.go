package repl

import "strings"

const bannerArt = `          _ _     _
 _ __ ___| (_)___(_) ___  _ __
| '__/ _ \ | / __| |/ _ \| '_ \
| | |  __/ | \__ \ | (_) | | | |
|_|  \___|_|_|___/_|\___/|_| |_|`

// Tagline follows the banner art.
const Tagline = "The relision term rewriting library."

// Banner returns the startup banner for version. An empty version prints
// as "unspecified".
func Banner(version string, color bool) string {
	if version == "" {
		version = "unspecified"
	}
	styles := NewStyles(color)

	var sb strings.Builder
	sb.WriteString("\n")
	for _, line := range strings.Split(bannerArt, "\n") {
		sb.WriteString(styles.Banner.Render(line))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Tagline.Render(Tagline))
	sb.WriteString("\n")
	sb.WriteString("Version: " + version + "\n")
	return sb.String()
}

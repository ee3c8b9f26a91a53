// Package platform resolves the per-user configuration directory where
// relision keeps its settings, REPL history and logs.
//
// The lookup rules are chosen at compile time:
//
//   - macOS: $HOME/Library/Application Support/relision
//   - Windows: %LOCALAPPDATA%\relision, then %USERPROFILE%\AppData\Local\relision,
//     then %HOME%\AppData\Local\relision
//   - everything else (XDG): $XDG_CONFIG_HOME/relision, then $HOME/.config/relision
package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"relision/internal/logging"
)

// AppName is the directory name used under the platform's config root.
const AppName = "relision"

// ErrNoConfigLocation means the environment offers no usable location.
var ErrNoConfigLocation = errors.New("cannot locate configuration directory for relision; please set HOME")

// Env is the view of the process environment used for resolution.
type Env struct {
	Getenv  func(key string) string
	HomeDir func() (string, error)
}

// OSEnv reads the real process environment.
func OSEnv() Env {
	return Env{Getenv: os.Getenv, HomeDir: os.UserHomeDir}
}

func (e Env) home() string {
	if e.HomeDir == nil {
		return ""
	}
	h, err := e.HomeDir()
	if err != nil {
		return ""
	}
	return h
}

// Name reports the platform this binary was compiled for.
func Name() string {
	return platformName()
}

// ConfigDir resolves the configuration directory from the process
// environment and creates it if needed.
func ConfigDir() (string, error) {
	return ConfigDirFrom(OSEnv())
}

// ConfigDirFrom is ConfigDir with an explicit environment.
func ConfigDirFrom(env Env) (string, error) {
	dir, err := resolve(env)
	if err != nil {
		return "", err
	}
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	logging.BootDebug("configuration directory: %s", dir)
	return dir, nil
}

// EnsureDir creates dir (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create configuration folder %s: %w", dir, err)
	}
	return nil
}

func resolveXDG(env Env) (string, error) {
	if xdg := env.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg + "/" + AppName, nil
	}
	if home := env.home(); home != "" {
		return filepath.Join(home, ".config", AppName), nil
	}
	return "", ErrNoConfigLocation
}

func resolveMacOS(env Env) (string, error) {
	if home := env.home(); home != "" {
		return filepath.Join(home, "Library", "Application Support", AppName), nil
	}
	return "", ErrNoConfigLocation
}

func resolveWindows(env Env) (string, error) {
	if local := env.Getenv("LOCALAPPDATA"); local != "" {
		return local + `\` + AppName, nil
	}
	if profile := env.Getenv("USERPROFILE"); profile != "" {
		return profile + `\AppData\Local\` + AppName, nil
	}
	if home := env.home(); home != "" {
		return home + `\AppData\Local\` + AppName, nil
	}
	return "", ErrNoConfigLocation
}

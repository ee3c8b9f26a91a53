//go:build !darwin && !windows

package platform

import "runtime"

var resolve = resolveXDG

func platformName() string {
	if runtime.GOOS == "linux" {
		return "linux"
	}
	return "unspecified"
}

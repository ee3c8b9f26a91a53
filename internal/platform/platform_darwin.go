//go:build darwin

package platform

var resolve = resolveMacOS

func platformName() string { return "macos" }

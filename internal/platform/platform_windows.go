//go:build windows

package platform

var resolve = resolveWindows

func platformName() string { return "windows" }

//go:build !windows

package main

// DPI awareness and monitor metrics are Windows concerns; elsewhere the
// display package reads bounds straight from the screenshot library.
func enableDPIAwareness() {}

func logMonitorConfiguration() {}

package platform

import (
	"strconv"
	"strings"
)

// osMarkers is checked in order. "darwin" has to come before "win".
var osMarkers = []struct {
	marker string
	os     string
}{
	{"darwin", OSMacOS},
	{"win", OSWindows},
	{"linux", OSLinux},
}

// ClassifyOS maps an identification string to an OS family using
// case-insensitive containment.
func ClassifyOS(uname string) string {
	lower := strings.ToLower(uname)
	for _, m := range osMarkers {
		if strings.Contains(lower, m.marker) {
			return m.os
		}
	}
	return OSUnknown
}

// BitSize returns the native integer width of the running binary.
func BitSize() int {
	return strconv.IntSize
}

// buildUname joins the non-empty parts with single spaces.
func buildUname(parts ...string) string {
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			fields = append(fields, p)
		}
	}
	return strings.Join(fields, " ")
}

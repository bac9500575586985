package dataset

import (
	"path/filepath"
	"strings"
)

// CentersPath derives the centers output name from the labeled output
// name: out.csv becomes out.centers.csv.
func CentersPath(output string) string {
	return derive(output, "centers")
}

// MembershipsPath derives the memberships output name from the labeled
// output name: out.csv.zst becomes out.memberships.csv.zst.
func MembershipsPath(output string) string {
	return derive(output, "memberships")
}

func derive(name, kind string) string {
	var comp string
	if CodecFor(name) != CodecNone {
		comp = filepath.Ext(name)
		name = strings.TrimSuffix(name, comp)
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return base + "." + kind + ext + comp
}

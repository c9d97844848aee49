package release

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a three-component MAJOR.MINOR.PATCH version.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

// ParseVersion splits a dotted version string into its three components.
// Parsing is total: a non-numeric, negative, or missing component degrades
// to 0 rather than failing. This tolerate-and-default policy is deliberate;
// callers wanting stricter guarantees should warn at the call site.
func ParseVersion(s string) Version {
	parts := strings.Split(s, ".")
	return Version{
		Major: componentOrZero(parts, 0),
		Minor: componentOrZero(parts, 1),
		Patch: componentOrZero(parts, 2),
	}
}

func componentOrZero(parts []string, idx int) int {
	if idx >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[idx]))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// String renders the version back to MAJOR.MINOR.PATCH.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 ordering two versions numerically.
func (v Version) Compare(other Version) int {
	pairs := [][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	}
	for _, p := range pairs {
		switch {
		case p[0] < p[1]:
			return -1
		case p[0] > p[1]:
			return 1
		}
	}
	return 0
}

// Bump returns the next version for the given release type.
func (v Version) Bump(t Type) Version {
	switch t {
	case TypeMajor:
		return Version{Major: v.Major + 1}
	case TypeMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case TypePatch, TypeHotfix:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		// Unknown types fall back to a minor bump.
		return Version{Major: v.Major, Minor: v.Minor + 1}
	}
}

// NextVersion computes the suggested version string for a release of the
// given type following current. It never fails: malformed components of
// current parse as 0 and unknown types bump minor.
func NextVersion(current string, t Type) string {
	return ParseVersion(current).Bump(t).String()
}

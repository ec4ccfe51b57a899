// Package version handles semantic versions for release workflows: parsing,
// bump rules, rule detection from conventional commits, project metadata
// files and release tags.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Version errors.
var (
	// ErrNoMetadataFile indicates none of the supported metadata files exist.
	ErrNoMetadataFile = errors.New("no supported metadata file found")

	// ErrInvalidMetadata indicates a metadata file lacks a version field in the expected place.
	ErrInvalidMetadata = errors.New("metadata file has an unexpected format")

	// ErrInvalidPreRelease indicates a pre-release component that cannot be incremented.
	ErrInvalidPreRelease = errors.New("pre-release must be in the form <label>.N")

	// ErrUnknownRule indicates a bump rule name that is not recognized.
	ErrUnknownRule = errors.New("unknown version rule")
)

// InvalidVersionError reports a string that is not a semantic version.
type InvalidVersionError struct {
	Version string
	File    string // Metadata file the version came from, if any
}

func (e *InvalidVersionError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("found invalid semantic version %q in %s", e.Version, e.File)
	}
	return fmt.Sprintf("invalid semantic version %q", e.Version)
}

// Version is a semantic version without build metadata.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
	Pre   string // Pre-release component without the leading "-"
}

// Parse parses a full semantic version like "1.2.3" or "1.2.3-rc.1".
// A leading "v" is accepted and build metadata is dropped.
func Parse(s string) (Version, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "v")
	canonical := "v" + raw
	if !semver.IsValid(canonical) {
		return Version{}, &InvalidVersionError{Version: s}
	}

	core, _, _ := strings.Cut(raw, "+")
	core, pre, _ := strings.Cut(core, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		// semver accepts "v1" and "v1.2" shorthands; metadata files must not.
		return Version{}, &InvalidVersionError{Version: s}
	}

	var nums [3]uint64
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, &InvalidVersionError{Version: s}
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Pre: pre}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	return s
}

// IsStable reports whether v has no pre-release component.
func (v Version) IsStable() bool {
	return v.Pre == ""
}

// StableCore returns v without its pre-release component.
func (v Version) StableCore() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// Compare returns -1, 0 or +1 following semantic version precedence.
func (v Version) Compare(other Version) int {
	return semver.Compare("v"+v.String(), "v"+other.String())
}

// preRelease splits a "<label>.N" pre-release component.
func (v Version) preRelease() (label string, n uint64, err error) {
	label, num, ok := strings.Cut(v.Pre, ".")
	if !ok || label == "" {
		return "", 0, fmt.Errorf("%w: %s", ErrInvalidPreRelease, v)
	}
	n, perr := strconv.ParseUint(num, 10, 64)
	if perr != nil {
		return "", 0, fmt.Errorf("%w: %s", ErrInvalidPreRelease, v)
	}
	return label, n, nil
}

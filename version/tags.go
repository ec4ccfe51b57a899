package version

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// TagName returns the release tag for v: "v1.2.3", or "pkg/v1.2.3" when the
// project has a package name.
func TagName(v Version, packageName string) string {
	return tagPrefix(packageName) + v.String()
}

// CurrentVersions is the latest stable and pre-release versions found in tags.
// The tag fields hold the tag names exactly as they exist in the repository,
// build metadata included.
type CurrentVersions struct {
	Stable    *Version
	StableTag string
	Pre       *Version // Only set when newer than Stable
	PreTag    string
}

// TagLister lists tag names. *git.Context satisfies it.
type TagLister interface {
	Tags() ([]string, error)
}

type taggedVersion struct {
	tag       string
	canonical string
	version   Version
}

// FromTags finds the current versions among tags belonging to packageName.
// Tags that are not semantic versions are ignored.
func FromTags(tags []string, packageName string) CurrentVersions {
	prefix := tagPrefix(packageName)

	var found []taggedVersion
	for _, tag := range tags {
		if !strings.HasPrefix(tag, prefix) {
			continue
		}
		canonical := "v" + strings.TrimPrefix(tag, prefix)
		v, err := Parse(canonical)
		if err != nil {
			continue
		}
		found = append(found, taggedVersion{tag: tag, canonical: canonical, version: v})
	}
	// Newest first. Tags differing only in build metadata rank equal; the
	// plain one wins.
	sort.SliceStable(found, func(i, j int) bool {
		if c := semver.Compare(found[i].canonical, found[j].canonical); c != 0 {
			return c > 0
		}
		return len(found[i].tag) < len(found[j].tag)
	})

	var current CurrentVersions
	for i := range found {
		f := found[i]
		if f.version.IsStable() {
			current.Stable, current.StableTag = &f.version, f.tag
			break
		}
		if current.Pre == nil {
			current.Pre, current.PreTag = &f.version, f.tag
		}
	}
	return current
}

// LastStableTag returns the tag of the latest stable release, or "" when the
// project has never had one.
func LastStableTag(repo TagLister, packageName string) (string, error) {
	tags, err := repo.Tags()
	if err != nil {
		return "", err
	}
	return FromTags(tags, packageName).StableTag, nil
}

func tagPrefix(packageName string) string {
	if packageName == "" {
		return "v"
	}
	return packageName + "/v"
}

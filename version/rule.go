package version

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/releaseflow/git"
)

// Rule selects which component of a version to increment.
type Rule string

const (
	RuleMajor   Rule = "major"
	RuleMinor   Rule = "minor"
	RulePatch   Rule = "patch"
	RulePre     Rule = "pre"     // Increment the pre-release counter
	RuleRelease Rule = "release" // Drop the pre-release component
)

// ParseRule parses a rule name, case-insensitively.
func ParseRule(s string) (Rule, error) {
	r := Rule(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RuleMajor, RuleMinor, RulePatch, RulePre, RuleRelease:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRule, s)
}

// rank orders the stable rules so the largest change wins.
func (r Rule) rank() int {
	switch r {
	case RuleMajor:
		return 3
	case RuleMinor:
		return 2
	case RulePatch:
		return 1
	}
	return 0
}

// Bump applies rule to v.
//
// major, minor and patch compute the next stable version from v's stable
// core; a pre-release of that core is released rather than skipped (e.g.
// patch on 1.2.4-rc.1 gives 1.2.4). pre increments the "<label>.N" counter,
// switching to label at .0 when label differs, or starts label.0 on the next
// patch when v is stable. release drops the pre-release component.
func Bump(v Version, rule Rule, label string) (Version, error) {
	switch rule {
	case RuleMajor, RuleMinor, RulePatch:
		return nextStable(v, rule), nil

	case RuleRelease:
		return v.StableCore(), nil

	case RulePre:
		if v.IsStable() {
			if label == "" {
				return Version{}, fmt.Errorf("%w: no label for %s", ErrInvalidPreRelease, v)
			}
			next := nextStable(v, RulePatch)
			next.Pre = label + ".0"
			return next, nil
		}
		current, n, err := v.preRelease()
		if err != nil {
			return Version{}, err
		}
		next := v.StableCore()
		if label == "" || label == current {
			next.Pre = fmt.Sprintf("%s.%d", current, n+1)
		} else {
			next.Pre = label + ".0"
		}
		return next, nil
	}
	return Version{}, fmt.Errorf("%w: %q", ErrUnknownRule, rule)
}

// BumpPreRelease computes the pre-release of the version rule would produce.
// If v is already a pre-release of that target with the same label, its
// counter is incremented.
func BumpPreRelease(v Version, rule Rule, label string) (Version, error) {
	target := nextStable(v, rule)
	if !v.IsStable() && v.StableCore() == target {
		current, n, err := v.preRelease()
		if err != nil {
			return Version{}, err
		}
		if current == label {
			target.Pre = fmt.Sprintf("%s.%d", label, n+1)
			return target, nil
		}
	}
	target.Pre = label + ".0"
	return target, nil
}

func nextStable(v Version, rule Rule) Version {
	core := v.StableCore()
	if !v.IsStable() && isReleaseOf(core, rule) {
		return core
	}
	switch rule {
	case RuleMajor:
		return Version{Major: core.Major + 1}
	case RuleMinor:
		return Version{Major: core.Major, Minor: core.Minor + 1}
	default:
		return Version{Major: core.Major, Minor: core.Minor, Patch: core.Patch + 1}
	}
}

// isReleaseOf reports whether a pre-release of core already targets a version at
// least as large as rule would produce, so releasing its core satisfies rule.
func isReleaseOf(core Version, rule Rule) bool {
	switch rule {
	case RuleMajor:
		return core.Minor == 0 && core.Patch == 0
	case RuleMinor:
		return core.Patch == 0
	default:
		return true
	}
}

// RuleFromCommits detects the bump rule implied by conventional commit
// messages: any breaking change is major, else any feat is minor, else any
// fix is patch. ok is false when no message implies a release.
func RuleFromCommits(messages []string) (rule Rule, ok bool) {
	for _, msg := range messages {
		c, parsed := git.ParseCommitMessage(msg)
		if !parsed {
			continue
		}

		var r Rule
		switch {
		case c.Breaking:
			r = RuleMajor
		case c.Type == git.CommitTypeFeat:
			r = RuleMinor
		case c.Type == git.CommitTypeFix:
			r = RulePatch
		default:
			continue
		}
		if r.rank() > rule.rank() {
			rule = r
		}
	}
	return rule, rule != ""
}

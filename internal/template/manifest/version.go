package manifest

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/uniwebcms/uniweb-cli/internal/debug"
)

// Satisfies reports whether the current tool version falls inside a
// template's declared compatibility range. Supported range forms: "*" and
// "latest" (always satisfy), ">=X", "^X", "~X", wildcard components
// ("1.x"), and exact versions.
//
// An unparsable current version short-circuits to compatible: the tool
// fails open rather than blocking every template over a broken build
// stamp. This is a deliberate leniency.
func Satisfies(currentVersion, versionRange string) bool {
	versionRange = strings.TrimSpace(versionRange)
	if versionRange == "" || versionRange == "*" || versionRange == "latest" {
		return true
	}

	current, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(currentVersion), "v"))
	if err != nil {
		debug.Debug("[manifest] unparsable current version %q, treating as compatible", currentVersion)
		return true
	}

	constraint, err := semver.NewConstraint(versionRange)
	if err != nil {
		// Unrecognized range syntax: require an exact match.
		debug.Debug("[manifest] unparsable version range %q, requiring exact match", versionRange)
		return strings.TrimPrefix(versionRange, "v") == current.String()
	}

	return constraint.Check(current)
}

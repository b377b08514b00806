package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckVersionCompatibility checks whether the engine can consume an
// artifact produced by another engine version. Returns nil if compatible.
//
// Compatibility rules:
//   - If either version is "main" (development build), the check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 reads a 1.2.5 artifact)
func CheckVersionCompatibility(engineVersion, artifactVersion string) error {
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	artifactVersion = strings.TrimPrefix(artifactVersion, "v")

	// Skip version check for "main" (development builds)
	if engineVersion == "main" || artifactVersion == "main" {
		return nil
	}

	engineSemver, err := semver.NewVersion(engineVersion)
	if err != nil {
		return fmt.Errorf("invalid engine version '%s': %w", engineVersion, err)
	}

	artifactSemver, err := semver.NewVersion(artifactVersion)
	if err != nil {
		return fmt.Errorf("invalid artifact version '%s': %w", artifactVersion, err)
	}

	if engineSemver.Major() != artifactSemver.Major() {
		return fmt.Errorf("major version mismatch: engine is %d.x.x but artifact requires %d.x.x",
			engineSemver.Major(), artifactSemver.Major())
	}

	if engineSemver.Minor() != artifactSemver.Minor() {
		return fmt.Errorf("minor version mismatch: engine is %d.%d.x but artifact requires %d.%d.x",
			engineSemver.Major(), engineSemver.Minor(),
			artifactSemver.Major(), artifactSemver.Minor())
	}

	return nil
}

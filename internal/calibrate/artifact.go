package calibrate

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/deanturpin/lft/internal/types"
	"github.com/deanturpin/lft/internal/version"
	"github.com/deanturpin/lft/pkg/errors"
)

// Artifact is the persisted outcome of a calibration session. The engine
// version is stored so stale artifacts from incompatible engines are
// rejected on load.
type Artifact struct {
	EngineVersion string                 `yaml:"engine_version"`
	GeneratedAt   time.Time              `yaml:"generated_at"`
	Strategies    []types.StrategyConfig `yaml:"strategies"`
}

// NewArtifact wraps a calibration result for persistence.
func NewArtifact(result *Result, generatedAt time.Time) Artifact {
	return Artifact{
		EngineVersion: version.GetVersion(),
		GeneratedAt:   generatedAt,
		Strategies:    result.Configs,
	}
}

// Save writes the artifact as YAML.
func (a Artifact) Save(path string) error {
	data, err := yaml.Marshal(a)
	if err != nil {
		return errors.Wrap(errors.ErrCodeArtifactInvalid, "failed to marshal calibration artifact", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeArtifactInvalid, "failed to write calibration artifact", err)
	}

	return nil
}

// LoadArtifact reads an artifact and verifies it was produced by a
// compatible engine version.
func LoadArtifact(path string) (Artifact, error) {
	var artifact Artifact

	data, err := os.ReadFile(path)
	if err != nil {
		return artifact, errors.Wrap(errors.ErrCodeArtifactInvalid, "failed to read calibration artifact", err)
	}

	if err := yaml.Unmarshal(data, &artifact); err != nil {
		return artifact, errors.Wrap(errors.ErrCodeArtifactInvalid, "failed to parse calibration artifact", err)
	}

	if err := version.CheckVersionCompatibility(version.GetVersion(), artifact.EngineVersion); err != nil {
		return artifact, errors.Wrap(errors.ErrCodeVersionMismatch, "calibration artifact is incompatible", err)
	}

	return artifact, nil
}

// EnabledSet extracts the strategy_name -> enabled mapping.
func (a Artifact) EnabledSet() map[string]bool {
	enabled := make(map[string]bool, len(a.Strategies))
	for _, cfg := range a.Strategies {
		enabled[cfg.Name] = cfg.Enabled
	}

	return enabled
}

package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"dhallgen/internal/errors"
	"dhallgen/internal/logger"
)

// EnvPrefix prefixes environment overrides, e.g. DHALLGEN_OUTPUT.
const EnvPrefix = "DHALLGEN"

// ErrInvalidJob marks job files that fail validation.
var ErrInvalidJob = errors.New("invalid job file")

// newViper creates a viper instance reading path with env overrides.
func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	return v
}

// Load reads, defaults and validates the job file at path.
func Load(path string) (*JobFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving job file path %s", path)
	}

	v := newViper(abs)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "reading job file %s", path),
			"job files are YAML, TOML or JSON; pass --config to choose another file",
		)
	}

	job, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "loading job file %s", path)
	}

	job.Path = abs
	job.BaseDir = filepath.Dir(abs)

	logger.Logger.Debugw("loaded job file",
		logger.FieldFile, abs,
		logger.FieldCount, len(job.Targets),
	)

	return job, nil
}

// LoadWithViper decodes and validates a job from a prepared viper
// instance. BaseDir is left empty.
func LoadWithViper(v *viper.Viper) (*JobFile, error) {
	var job JobFile
	if err := v.Unmarshal(&job); err != nil {
		return nil, errors.Wrap(err, "decoding job file")
	}

	applyTargetDefaults(&job)

	diags := Validate(&job)
	for _, w := range diags.Warnings {
		logger.Logger.Warnw(w.Message, logger.FieldTarget, w.Declaration)
	}

	if diags.HasErrors() {
		return nil, diagnosticsError(diags)
	}

	return &job, nil
}

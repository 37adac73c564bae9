package config

import (
	"github.com/spf13/viper"
)

// Default settings.
const (
	DefaultPackage = "config"
	DefaultOutput  = "./generated"
)

// SetDefaults configures default values for all top-level settings.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("package", DefaultPackage)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("comments", true)
	v.SetDefault("remote_imports", true)
	v.SetDefault("cache_dir", "")
}

// applyTargetDefaults fills in per-target values derived from the job.
func applyTargetDefaults(j *JobFile) {
	for i := range j.Targets {
		t := &j.Targets[i]

		t.Kind = TargetKind(normalizeWord(string(t.Kind)))
		t.Format = Format(normalizeWord(string(t.Format)))

		if t.Format == "" {
			t.Format = FormatGo
		}

		if t.Package == "" {
			t.Package = j.Package
		}

		if t.File == "" && t.Name != "" {
			t.File = t.defaultFile()
		}
	}
}

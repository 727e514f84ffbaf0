// Package config loads build-time options from a YAML file into
// types.BuildOptions. The loader is pure: it returns a struct and touches
// no package-level state, so it composes with the "treat all configuration
// as explicit constructor parameters" rule instead of violating it.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arborwake/impactindex/types"
)

// Load reads path and unmarshals it into a types.BuildOptions, then fills
// in defaults via Init for anything the file left zero-valued. The Ranker
// field has no YAML representation; callers must set it on the returned
// value before passing it to engine.New.
func Load(path string) (types.BuildOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.BuildOptions{}, err
	}
	var opts types.BuildOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return types.BuildOptions{}, err
	}
	opts.Init()
	return opts, nil
}

package config

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
)

// configBuilder collects partial configs in priority order and merges them.
type configBuilder struct {
	configs []*StructuredConfig
	args    []string
	environ map[string]string
	err     error
}

// newConfigBuilder reads flags from args and variables from environ. A nil
// environ means the process environment.
func newConfigBuilder(args []string, environ map[string]string) *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
		args:    args,
		environ: environ,
	}
}

// loadConfig runs the full pipeline: env, flags, JSON file, defaults.
func loadConfig(args []string, environ map[string]string, defaults *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder(args, environ).
		withEnv().
		withFlags().
		withJSON().
		withDefaults(defaults).
		build()
}

func processArgs() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}

// build merges the collected configs. mergo only fills zero fields, so the
// earliest source that sets a value wins.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(merged, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return merged, nil
}

func (b *configBuilder) withEnv() *configBuilder {
	return b.add(parseEnv(b.environ))
}

func (b *configBuilder) withFlags() *configBuilder {
	return b.add(ParseFlags(b.args))
}

// withJSON loads the file named by the highest priority source that sets a
// path.
func (b *configBuilder) withJSON() *configBuilder {
	if b.err != nil {
		return b
	}

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			return b.add(parseJSON(cfg.JSONFilePath))
		}
	}

	return b
}

func (b *configBuilder) withDefaults(defaults *StructuredConfig) *configBuilder {
	if defaults != nil {
		b.configs = append(b.configs, defaults)
	}
	return b
}

func (b *configBuilder) add(cfg *StructuredConfig, err error) *configBuilder {
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, cfg)
	return b
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/cranekit/rimeup/internal/messages"
	"github.com/cranekit/rimeup/internal/templates"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax, filesystem, or other loading errors).
// Callers can use errors.Is(err, ErrConfigValidation) to distinguish
// validation problems from other Load failure modes.
var ErrConfigValidation = errors.New("config validation failed")

// Load reads and validates the configuration at path. The file must exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadFmt, path, err)
	}
	return Parse(data, path)
}

// LoadOrDefault reads the configuration at path, falling back to the
// built-in defaults when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if err := cfg.expandPaths(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadFmt, path, err)
	}
	return Parse(data, path)
}

// LoadTemplate returns the embedded default config file as a validated Config.
func LoadTemplate() (*Config, error) {
	data, err := templates.Read(templates.ConfigName)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigTemplateReadFmt, err)
	}
	return Parse(data, "template "+templates.ConfigName)
}

// Parse decodes and validates config TOML data from a source identifier.
// Values absent from data keep their built-in defaults; unknown keys are
// rejected. data is the TOML content; source is used in error messages.
func Parse(data []byte, source string) (*Config, error) {
	var overlay Config
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf(messages.ConfigParseFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnknownKeysFmt+" "+messages.ConfigValidationGuidance, ErrConfigValidation, source, err)
	}
	cfg := Default()
	cfg.merge(&overlay)
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s. "+messages.ConfigValidationGuidance, ErrConfigValidation, strings.Join(problems, "; "))
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
// This catches keys that toml.Unmarshal silently ignores (typos like
// [archive] pathh that would otherwise leave the default in place).
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"BMPResize/rules"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"
)

const DefaultPath = "resize.yml"

// Config holds the optional settings read from the YAML configuration file.
type Config struct {
	Verbose    bool     `mapstructure:"verbose"`
	BufferSize int      `mapstructure:"bufferSize"` // bufio size for input and output, 0 for the default
	Rules      []string `mapstructure:"rules"`      // extra acceptance rules, checked after the defaults
}

// LoadConfig reads and parses the configuration file, reporting to logger.
// A nil logger disables logging. A missing file is not an error: the zero
// Config is returned.
func LoadConfig(configPath string, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	var cfg Config
	configData, err := ioutil.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read configuration file '%s': %w", configPath, err)
	}

	cfg, err = Parse(configData)
	if err != nil {
		var yamlErr *yaml.TypeError
		if errors.As(err, &yamlErr) {
			for _, msg := range yamlErr.Errors {
				logger.Printf("YAML unmarshal error in %s: %s", configPath, msg)
			}
		}
		return cfg, fmt.Errorf("failed to parse configuration file '%s': %w", configPath, err)
	}
	logger.Printf("Loaded configuration from %s (%d extra rule(s)).", configPath, len(cfg.Rules))
	return cfg, nil
}

// Parse decodes configuration YAML. Unknown keys are rejected so a typo
// does not silently fall back to a default.
func Parse(data []byte) (Config, error) {
	var cfg Config
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("error unmarshaling YAML: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &cfg,
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(raw); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the values that could not be checked while decoding.
func (c Config) Validate() error {
	if c.BufferSize < 0 {
		return fmt.Errorf("bufferSize must not be negative, got %d", c.BufferSize)
	}
	if _, err := rules.Compile(c.Rules); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	return nil
}

// RuleSet compiles the default acceptance rules followed by the configured ones.
func (c Config) RuleSet() (rules.RuleSet, error) {
	return rules.WithDefaults(c.Rules)
}

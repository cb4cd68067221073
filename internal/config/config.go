// Package config loads and validates the YAML run configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/runesmith/runesmith/internal/instruction"
	"github.com/runesmith/runesmith/internal/registry"
)

// Run holds the settings of one documentation run. Instances are immutable
// once validated.
type Run struct {
	CodePath           string   `mapstructure:"code_path"`
	OutputDir          string   `mapstructure:"output_dir"`
	Blacklist          []string `mapstructure:"blacklist"`
	DocTypes           []string `mapstructure:"doc_types"`
	CustomInstructions string   `mapstructure:"custom_instructions"`
	Model              string   `mapstructure:"model"`
	Provider           string   `mapstructure:"provider"`
	Temperature        float64  `mapstructure:"temperature"`
	StrictTokens       bool     `mapstructure:"strict_tokens"`
}

// Load reads the YAML configuration file at configurationPath.
func Load(configurationPath string) (Run, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigFile(configurationPath)
	viperInstance.SetConfigType("yaml")
	if readError := viperInstance.ReadInConfig(); readError != nil {
		return Run{}, fmt.Errorf("reading configuration %s: %w", configurationPath, readError)
	}
	var run Run
	if unmarshalError := viperInstance.Unmarshal(&run); unmarshalError != nil {
		return Run{}, fmt.Errorf("parsing configuration %s: %w", configurationPath, unmarshalError)
	}
	return run, nil
}

// Validate checks required fields, the documentation-type vocabulary, and the
// provider variant.
func (run Run) Validate() error {
	if strings.TrimSpace(run.CodePath) == "" {
		return fmt.Errorf("code_path is required")
	}
	if strings.TrimSpace(run.OutputDir) == "" {
		return fmt.Errorf("output_dir is required")
	}
	if len(run.DocTypes) == 0 {
		return fmt.Errorf("doc_types must list at least one documentation type")
	}
	for _, documentType := range run.DocTypes {
		if !instruction.IsSupportedDocumentType(documentType) {
			return fmt.Errorf("unsupported documentation type %q; valid options: %s",
				documentType, strings.Join(instruction.SupportedDocumentTypes(), ", "))
		}
	}
	if strings.TrimSpace(run.Model) == "" {
		return fmt.Errorf("model is required")
	}
	if !registry.IsSupportedProvider(run.Provider) {
		return fmt.Errorf("unsupported provider %q; valid options: %s",
			run.Provider, strings.Join(registry.SupportedProviders(), ", "))
	}
	if run.Temperature < 0 || run.Temperature > 2 {
		return fmt.Errorf("temperature %v is outside the supported range [0, 2]", run.Temperature)
	}
	return nil
}

package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"colcss/columns"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// GeneratorConfig seeds persistent generator defaults. Layout files can
	// change them at run time, "reset" returns to these values.
	GeneratorConfig struct {
		StructuralSelector   bool   `yaml:"structural_selector"`
		AttributeSelector    bool   `yaml:"attribute_selector"`
		SiblingChainFallback bool   `yaml:"sibling_chain_fallback"`
		SiblingChainMaxDepth int    `yaml:"sibling_chain_max_depth" validate:"min=0,max=500"`
		AttributeName        string `yaml:"attribute_name" validate:"required"`
		ClassName            string `yaml:"class_name" validate:"required"`
		Gutter               string `yaml:"gutter" validate:"required"`
		WidthCalculation     bool   `yaml:"width_calculation"`
	}

	OutputConfig struct {
		Banner string `yaml:"banner"`
		Verify bool   `yaml:"verify"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Generator GeneratorConfig `yaml:"generator"`
		Output    OutputConfig    `yaml:"output"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	BannerTemplateFieldName TemplateFieldName = "banner"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(BannerTemplateFieldName)),
)

// Options converts configured values into generator options.
func (conf *GeneratorConfig) Options() ([]columns.Option, error) {
	gutter, err := columns.ParseWidth(conf.Gutter)
	if err != nil {
		return nil, fmt.Errorf("bad generator gutter: %w", err)
	}
	if gutter.Value < 0 || (gutter.IsPercentage() && !gutter.IsZero()) {
		return nil, fmt.Errorf("bad generator gutter: %w: %s", columns.ErrBadGutter, conf.Gutter)
	}
	return []columns.Option{
		columns.WithStructuralSelector(conf.StructuralSelector),
		columns.WithAttributeSelector(conf.AttributeSelector),
		columns.WithSiblingChainFallback(conf.SiblingChainFallback),
		columns.WithSiblingChainMaxDepth(conf.SiblingChainMaxDepth),
		columns.WithAttributeName(conf.AttributeName),
		columns.WithClassName(conf.ClassName),
		columns.WithGutter(gutter),
		columns.WithWidthCalculation(conf.WidthCalculation),
	}, nil
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
		if _, err := cfg.Generator.Options(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

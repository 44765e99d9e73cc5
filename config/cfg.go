package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// NotionConfig describes access to the destination workspace. Token is
	// only needed when internal note links should be rewritten to destination
	// page URLs; without it links keep their original values.
	NotionConfig struct {
		APIToken      SecretString `yaml:"api_token"`
		APIVersion    string       `yaml:"api_version" validate:"required"`
		LinksDictPath string       `yaml:"links_dict_path,omitempty" sanitize:"path_clean" validate:"omitempty,filepath"`
	}

	// ImagesConfig controls handling of inline-encoded images.
	ImagesConfig struct {
		RasterizeSVG bool `yaml:"rasterize_svg"`
		MaxRasterDim int  `yaml:"max_raster_dim" validate:"min=16,max=8192"`
	}

	// ConversionConfig controls the note to block-tree conversion.
	ConversionConfig struct {
		AddMeta            bool         `yaml:"add_meta"`
		Workers            int          `yaml:"workers" validate:"min=1,max=64"`
		OutputNameTemplate string       `yaml:"output_name_template"`
		FileNameSlugify    bool         `yaml:"file_name_slugify"`
		Images             ImagesConfig `yaml:"images"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Conversion ConversionConfig `yaml:"conversion"`
		Notion     NotionConfig     `yaml:"notion"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

// TemplateFieldName names a configuration field containing a user template.
type TemplateFieldName string

// NOTE: must match yaml field names above, alternative is to use struct
// field name and reflection which I want to avoid for now
const (
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

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

// Dump serializes processed configuration back to yaml, hiding secrets.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

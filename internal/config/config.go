package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/scan-io-git/propusage/internal/template"
	"github.com/scan-io-git/propusage/pkg/shared/files"
)

const (
	// DefaultConfigFile is read from the working directory when --config is not given.
	DefaultConfigFile = "propusage.yml"
	// EnvLogLevel overrides logger.level.
	EnvLogLevel = "PROPUSAGE_LOG_LEVEL"

	DefaultDefinitions = "src/main/resources/**/*.properties"
	DefaultUsages      = "src/main/java/**/*.java"
	DefaultThreads     = 1
	MaxThreads         = 64
)

// Config is the root of propusage.yml.
type Config struct {
	Logger Logger `yaml:"logger"`
	Rule   Rule   `yaml:"rule"`
}

// Logger configures hclog output.
type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// Rule holds the options of the property usage check.
type Rule struct {
	Basedir            string   `yaml:"basedir"`
	Definitions        []string `yaml:"definitions"`
	Usages             []string `yaml:"usages"`
	Templates          []string `yaml:"templates"`
	Placeholder        string   `yaml:"placeholder"`
	PropertyNameRegexp string   `yaml:"property_name_regexp"`
	PropertiesEncoding string   `yaml:"properties_encoding"`
	SourceEncoding     string   `yaml:"source_encoding"`
	Threads            int      `yaml:"threads"`

	DefinitionsOnlyOnce      *bool `yaml:"definitions_only_once"`
	DefinedPropertiesAreUsed *bool `yaml:"defined_properties_are_used"`
	UsedPropertiesAreDefined *bool `yaml:"used_properties_are_defined"`
	RawPropertyNames         *bool `yaml:"raw_property_names"`
}

// CheckDuplicates reports whether definitions_only_once is on (default true).
func (r *Rule) CheckDuplicates() bool {
	return GetBoolValue(r, "DefinitionsOnlyOnce", true)
}

// CheckUnused reports whether defined_properties_are_used is on (default true).
func (r *Rule) CheckUnused() bool {
	return GetBoolValue(r, "DefinedPropertiesAreUsed", true)
}

// CheckUndefined reports whether used_properties_are_defined is on (default true).
func (r *Rule) CheckUndefined() bool {
	return GetBoolValue(r, "UsedPropertiesAreDefined", true)
}

// QuotePropertyNames reports whether property names are regex-quoted before substitution.
func (r *Rule) QuotePropertyNames() bool {
	return !GetBoolValue(r, "RawPropertyNames", false)
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields. Boolean toggles stay nil and resolve through GetBoolValue.
func ApplyDefaults(cfg *Config) {
	cfg.Logger.Level = SetThen(cfg.Logger.Level, "info")

	r := &cfg.Rule
	r.Definitions = SetThen(r.Definitions, []string{DefaultDefinitions})
	r.Usages = SetThen(r.Usages, []string{DefaultUsages})
	r.Templates = SetThen(r.Templates, []string{template.DefaultTemplate})
	r.Placeholder = SetThen(r.Placeholder, template.DefaultPlaceholder)
	r.PropertyNameRegexp = SetThen(r.PropertyNameRegexp, template.DefaultPropertyNameRegexp)
	r.PropertiesEncoding = SetThen(r.PropertiesEncoding, files.DefaultCharset)
	r.SourceEncoding = SetThen(r.SourceEncoding, files.DefaultCharset)
	r.Threads = SetThen(r.Threads, DefaultThreads)
}

// ValidateConfigPath checks that path exists and is a regular file.
func ValidateConfigPath(path string) error {
	return files.ValidatePath(path)
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	d.SetStrict(true)
	if err := d.Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// LoadConfig reads configPath and applies defaults.
// An empty configPath means DefaultConfigFile, which may be absent; an explicit path must exist.
func LoadConfig(configPath string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigFile
	}

	expanded, err := files.ExpandPath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path %q: %w", configPath, err)
	}

	cfg := &Config{}
	if err := LoadYAML(expanded, cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to load config %q: %w", expanded, err)
	}

	ApplyDefaults(cfg)
	return cfg, nil
}

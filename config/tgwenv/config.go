package tgwenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names
const (
	ConfigEnvKey = "TGWOPS_CONFIG"
)

// Directory and file names
const (
	DirName        = ".tgwops"
	ConfigFileName = "config.yml"
	LogsDirName    = "logs"
)

// Defaults applied when the config file leaves a field empty.
const (
	DefaultDriver       = "aws"
	DefaultOutputPath   = "main.tf"
	DefaultResourceName = "this"
)

// Env holds the resolved project directories and the loaded .tgwops/config.yml contents.
type Env struct {
	Root       string   // Directory containing .tgwops, or the working directory when none was found
	Dir        string   // Resolved .tgwops directory; empty when none exists
	ConfigPath string   // Config file actually loaded; empty when none was loaded
	Version    int      // config.yml version
	Provider   Provider // config.yml provider
	Output     Output   // config.yml output
	Logging    Logging  // config.yml logging
}

// Provider selects the inventory driver and its settings.
type Provider struct {
	Driver   string            `yaml:"driver,omitempty"`   // aws (default) | snapshot
	Settings map[string]string `yaml:"settings,omitempty"` // Driver specific, e.g. AWS_REGION
}

// Output controls the generated Terraform file.
type Output struct {
	Path         string `yaml:"path,omitempty"`         // Output file (default: main.tf)
	ResourceName string `yaml:"resourceName,omitempty"` // Terraform resource label (default: this)
}

// Logging represents the logging configuration from .tgwops/config.yml
type Logging struct {
	Dir           string `yaml:"dir,omitempty"`           // Log directory (default: $TGWOPS_DIR/logs)
	Format        string `yaml:"format,omitempty"`        // Log format: human (default), text, json
	Level         string `yaml:"level,omitempty"`         // Log level: DEBUG, INFO (default), WARN, ERROR
	Output        string `yaml:"output,omitempty"`        // "-" (stderr, default), "none", "auto" or a file path
	RetentionDays int    `yaml:"retentionDays,omitempty"` // Days to retain log files (default: 7)
}

// configFile represents the structure of .tgwops/config.yml for unmarshaling
type configFile struct {
	Version  int      `yaml:"version"`
	Provider Provider `yaml:"provider"`
	Output   Output   `yaml:"output,omitempty"`
	Logging  Logging  `yaml:"logging,omitempty"`
}

// Resolve locates and loads the configuration.
//
// Resolution order:
//  1. configPath parameter (from --config flag or TGWOPS_CONFIG env); the file must exist
//  2. Upward search from workDir for a parent containing .tgwops/config.yml
//  3. No file: defaults only
func Resolve(configPath, workDir string) (*Env, error) {
	absWork, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	e := &Env{Root: filepath.Clean(absWork)}

	if configPath != "" {
		configPath, err = filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file %q does not exist: %w", configPath, err)
		}
		e.Dir = filepath.Dir(configPath)
		if filepath.Base(e.Dir) == DirName {
			e.Root = filepath.Dir(e.Dir)
		}
		if err := e.loadConfigFile(configPath); err != nil {
			return nil, err
		}
	} else {
		found, err := searchForRoot(absWork)
		if err != nil {
			return nil, fmt.Errorf("searching for %s directory: %w", DirName, err)
		}
		if found != "" {
			e.Root = found
			e.Dir = filepath.Join(found, DirName)
			if err := e.loadConfigFile(filepath.Join(e.Dir, ConfigFileName)); err != nil {
				return nil, err
			}
		}
	}

	e.applyDefaults()
	return e, nil
}

// searchForRoot searches upward from startDir for a parent containing .tgwops/config.yml.
// Returns the parent directory (not .tgwops itself) or empty string if not found.
func searchForRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}

	current := absDir
	for {
		info, err := os.Stat(filepath.Join(current, DirName, ConfigFileName))
		if err == nil && !info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

// loadConfigFile loads path into the Env.
func (e *Env) loadConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %q: %w", path, err)
	}

	var cf configFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("parsing config file %q: %w", path, err)
	}

	e.ConfigPath = path
	e.Version = cf.Version
	e.Provider = cf.Provider
	e.Output = cf.Output
	e.Logging = cf.Logging

	for k, v := range e.Provider.Settings {
		e.Provider.Settings[k] = e.ExpandVars(v)
	}
	e.Output.Path = e.ExpandVars(e.Output.Path)
	e.Logging.Dir = e.ExpandVars(e.Logging.Dir)
	return nil
}

func (e *Env) applyDefaults() {
	if e.Provider.Driver == "" {
		e.Provider.Driver = DefaultDriver
	}
	if e.Provider.Settings == nil {
		e.Provider.Settings = map[string]string{}
	}
	if e.Output.Path == "" {
		e.Output.Path = DefaultOutputPath
	}
	if e.Output.ResourceName == "" {
		e.Output.ResourceName = DefaultResourceName
	}
	if e.Logging.Dir == "" && e.Dir != "" {
		e.Logging.Dir = filepath.Join(e.Dir, LogsDirName)
	}
}

// ExpandVars replaces $TGWOPS_ROOT and $TGWOPS_DIR in the given string.
func (e *Env) ExpandVars(s string) string {
	s = strings.ReplaceAll(s, "$TGWOPS_ROOT", e.Root)
	s = strings.ReplaceAll(s, "$TGWOPS_DIR", e.Dir)
	return s
}

// InitialConfigYAML generates the initial .tgwops/config.yml content as YAML bytes.
// The generated YAML has proper field ordering and 2-space indentation.
func InitialConfigYAML(driver, region string) ([]byte, error) {
	if driver == "" {
		driver = DefaultDriver
	}
	settings := map[string]string{}
	if region != "" {
		settings["AWS_REGION"] = region
	}
	defaultConfig := configFile{
		Version: 1,
		Provider: Provider{
			Driver:   driver,
			Settings: settings,
		},
		Output: Output{
			Path:         DefaultOutputPath,
			ResourceName: DefaultResourceName,
		},
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&defaultConfig); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("closing yaml encoder: %w", err)
	}

	return []byte(buf.String()), nil
}

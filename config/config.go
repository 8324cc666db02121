package config

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/travkit/travkit/errors"
)

// ConfigFileName is the per-project configuration file name.
const ConfigFileName = ".travkit.yml"

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads and parses a single configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration from a byte array, expanding ${VAR}
// environment references first.
func LoadFromBytes(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file")
	}

	return &config, nil
}

// LoadDefault loads configuration with hierarchical merging starting from
// the current working directory.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging:
//  1. Global config (~/.config/travkit/travkit.yml) - base layer
//  2. Project config (.travkit.yml, found by walking up from startDir)
//
// Both layers are optional; a missing layer contributes nothing. Resolution
// never fails on absent configuration, only on unreadable or unparseable
// files.
func LoadFrom(startDir string) (*Config, error) {
	return LoadFromWithLogger(startDir, logrus.NewEntry(logrus.New()))
}

// LoadFromWithLogger loads configuration with hierarchical merging and logging.
func LoadFromWithLogger(startDir string, logger *logrus.Entry) (*Config, error) {
	final := &Config{}

	// 1. Global config, if present
	globalPath := getXDGConfigPath()
	if globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			logger.WithField("path", globalPath).Debug("Loading global configuration")
			globalCfg, err := Load(globalPath)
			if err != nil {
				logger.WithError(err).Warn("Failed to load global configuration, continuing without it")
			} else {
				final = globalCfg
			}
		}
	}

	// 2. Project config, if present
	projectPath, err := FindConfigFile(startDir)
	if err == nil {
		logger.WithField("path", projectPath).Debug("Loading project configuration")
		projectCfg, err := Load(projectPath)
		if err != nil {
			return nil, err
		}
		final = mergeConfigs(final, projectCfg)
	}

	return final, nil
}

// FindConfigFile walks up from startDir looking for the project config file.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.ConfigNotFound(filepath.Join(startDir, ConfigFileName))
		}
		dir = parent
	}
}

// getXDGConfigPath returns the global configuration file path.
func getXDGConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "travkit", "travkit.yml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "travkit", "travkit.yml")
}

// expandEnvVars replaces ${VAR} references with environment values. Unknown
// variables expand to the empty string.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarRegex.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration, loaded from environment variables.
type Config struct {
	Port         string
	LogLevel     string
	StaticDir    string
	PatternsFile string
}

// New loads configuration from environment variables with defaults.
func New() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		StaticDir:    getEnv("STATIC_DIR", ""),
		PatternsFile: getEnv("PATTERNS_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// PatternAliases maps field names (accountNumber, balance, status,
// openedDate) to extra label aliases layered onto the default pattern
// library, so new report layouts can be supported without a code change.
//
// Example patterns.yaml:
//
//	accountNumber:
//	  - "Loan Number"
//	balance:
//	  - "Amount Owed"
type PatternAliases map[string][]string

// LoadPatternAliases reads a YAML pattern-alias file from disk.
func LoadPatternAliases(path string) (PatternAliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading patterns file: %w", err)
	}
	var aliases PatternAliases
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("parsing patterns file: %w", err)
	}
	return aliases, nil
}

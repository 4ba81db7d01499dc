package utils

import (
	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes a TOML file into config. A failure here is not
// final; callers fall back to ParseTOMLWithRecovery.
func LoadTOMLFile(configPath string, config interface{}) error {
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return err
	}
	return nil
}

// ParseTOMLWithRecovery re-decodes a TOML file into an untyped map. Keys
// with the wrong type for the struct still decode here, so the valid
// parts of a broken config stay usable.
func ParseTOMLWithRecovery(configPath string) (map[string]any, error) {
	raw := make(map[string]any)
	if _, err := toml.DecodeFile(configPath, &raw); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", configPath, err)
		return nil, err
	}
	return raw, nil
}

// ExtractSection pulls one table out of recovered TOML data.
func ExtractSection(data map[string]any, sectionName string) (map[string]any, bool) {
	section, ok := data[sectionName].(map[string]any)
	return section, ok
}

// ExtractInt reads an integer key from recovered TOML data. TOML integers
// decode as int64; anything else is reported missing.
func ExtractInt(data map[string]any, key string) (int, bool) {
	val, ok := data[key].(int64)
	if !ok {
		return 0, false
	}
	return int(val), true
}

// ExtractBool reads a boolean key from recovered TOML data.
func ExtractBool(data map[string]any, key string) (bool, bool) {
	val, ok := data[key].(bool)
	return val, ok
}

package java

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is looked up in the working directory
const ConfigFileName = "Config.toml"

// Settings represents migration configuration
type Settings struct {
	// PackageName overrides the package declared by the Java file when set
	PackageName   string `toml:"package_name"`
	LicenseHeader string `toml:"license_header"`
	// ForceNotNullTypes renders every reference type as not-null
	ForceNotNullTypes         bool `toml:"force_not_null_types"`
	SpecifyLocalVariableTypes bool `toml:"specify_local_variable_types"`
	// NotNullAnnotations are qualified annotation names recognized in addition to the built in ones
	NotNullAnnotations []string `toml:"not_null_annotations"`
	// TypeMappings maps Java simple type names to Kotlin type names
	TypeMappings map[string]string `toml:"type_mappings"`
}

// DefaultSettings returns the settings used when no configuration file is present
func DefaultSettings() Settings {
	return Settings{
		TypeMappings: map[string]string{},
	}
}

// LoadConfig loads migration configuration from Config.toml in the working directory
func LoadConfig() Settings {
	wd, err := os.Getwd()
	if err != nil {
		return DefaultSettings()
	}
	return LoadConfigFrom(filepath.Join(wd, ConfigFileName))
}

// LoadConfigFrom loads migration configuration from the given file, falling back to the
// defaults when the file is missing or invalid
func LoadConfigFrom(configPath string) Settings {
	settings := DefaultSettings()
	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file doesn't exist, return defaults
		return settings
	}

	var fileSettings Settings
	if err := toml.Unmarshal(data, &fileSettings); err != nil {
		// Invalid TOML, return defaults
		return settings
	}

	if fileSettings.PackageName != "" {
		settings.PackageName = fileSettings.PackageName
	}
	if fileSettings.LicenseHeader != "" {
		settings.LicenseHeader = fileSettings.LicenseHeader
	}
	settings.ForceNotNullTypes = fileSettings.ForceNotNullTypes
	settings.SpecifyLocalVariableTypes = fileSettings.SpecifyLocalVariableTypes
	settings.NotNullAnnotations = fileSettings.NotNullAnnotations
	if fileSettings.TypeMappings != nil {
		settings.TypeMappings = fileSettings.TypeMappings
	}
	return settings
}

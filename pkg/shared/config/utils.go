package config

import "reflect"

// BoolValue dereferences an optional bool, falling back to defaultValue when unset.
func BoolValue(v *bool, defaultValue bool) bool {
	if v == nil {
		return defaultValue
	}
	return *v
}

// SetThen selects the first value if set, otherwise defaults.
func SetThen[T any](value T, defaultValue T) T {
	if reflect.ValueOf(value).IsZero() {
		return defaultValue
	}
	return value
}

// GetHome returns the resolved dfirctl home folder.
func GetHome(cfg *Config) string {
	return cfg.Dfirctl.HomeFolder
}

// GetResultsFolder returns the folder exported reports are written to.
func GetResultsFolder(cfg *Config) string {
	return cfg.Dfirctl.ResultsFolder
}

// GetCredentialsFile returns the path of the persisted credentials file.
func GetCredentialsFile(cfg *Config) string {
	return cfg.Dfirctl.CredentialsFile
}

// GetServerURL returns the analyzer endpoint base URL.
func GetServerURL(cfg *Config) string {
	return cfg.Dfirctl.ServerURL
}

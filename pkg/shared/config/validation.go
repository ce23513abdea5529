package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dfir-analyzer/dfirctl/pkg/shared/files"
)

// ValidateConfig checks if the global configurations have valid values and
// resolves folder defaults and environment overrides.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateDfirctlConfig(cfg); err != nil {
		return fmt.Errorf("YAML global config: dfirctl directive is invalid: %w", err)
	}
	if err := ValidateHTTPConfig(&cfg.HTTPClient); err != nil {
		return fmt.Errorf("YAML global config: http_client directive is invalid: %w", err)
	}
	return nil
}

// ValidateDfirctlConfig resolves and validates the application-level settings.
func ValidateDfirctlConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("dfirctl configuration is nil")
	}
	if err := updateHome(cfg); err != nil {
		return fmt.Errorf("failed to update home folder: %w", err)
	}
	if err := updateFolder(&cfg.Dfirctl.ResultsFolder, "DFIRCTL_RESULTS_FOLDER", "results", cfg); err != nil {
		return fmt.Errorf("failed to update results folder: %w", err)
	}
	if err := updateServerURL(cfg); err != nil {
		return fmt.Errorf("failed to resolve server url: %w", err)
	}

	if cfg.Dfirctl.CredentialsFile == "" {
		cfg.Dfirctl.CredentialsFile = filepath.Join(cfg.Dfirctl.HomeFolder, "credentials.json")
	}
	expanded, err := files.ExpandPath(cfg.Dfirctl.CredentialsFile)
	if err != nil {
		return fmt.Errorf("failed to expand credentials path %q: %w", cfg.Dfirctl.CredentialsFile, err)
	}
	cfg.Dfirctl.CredentialsFile = expanded

	return nil
}

// ValidateHTTPConfig checks if the HTTP configurations have valid values.
func ValidateHTTPConfig(httpConfig *HTTPClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if httpConfig.RetryCount < 0 || httpConfig.RetryCount > 20 {
		return fmt.Errorf("retry_count must be between 0 and 20: %d", httpConfig.RetryCount)
	}

	durations := map[string]time.Duration{
		"RetryMaxWaitTime": httpConfig.RetryMaxWaitTime,
		"RetryWaitTime":    httpConfig.RetryWaitTime,
		"Timeout":          httpConfig.Timeout,
	}
	for name, duration := range durations {
		if err := validateDuration(duration, name, 10*time.Minute); err != nil {
			return err
		}
	}

	if err := validateProxy(&httpConfig.Proxy); err != nil {
		return err
	}

	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// validateProxy checks if the given Proxy settings are valid.
func validateProxy(proxy *Proxy) error {
	if proxy == nil {
		return fmt.Errorf("proxy configuration is nil")
	}

	// If host or port is not set, skip further validation
	if proxy.Host == "" || proxy.Port == 0 {
		return nil
	}

	if err := validateHost(&proxy.Host); err != nil {
		return err
	}

	if err := validatePort(proxy.Port); err != nil {
		return err
	}

	return nil
}

// validateHost ensures the host includes a scheme; adds "http" if missing.
func validateHost(host *string) error {
	if host == nil {
		return fmt.Errorf("host string pointer is nil")
	}

	if !strings.Contains(*host, "://") {
		*host = "http://" + *host
	}
	*host = strings.TrimRight(*host, "/")

	_, err := url.Parse(*host)
	if err != nil {
		return fmt.Errorf("invalid host URL: %w", err)
	}

	return nil
}

// validatePort checks if the port part of the proxy configuration is valid.
func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}

// updateHome updates the HomeFolder from environment variables or sets a default value.
func updateHome(cfg *Config) error {
	if homeFolder := os.Getenv("DFIRCTL_HOME"); homeFolder != "" {
		cfg.Dfirctl.HomeFolder = homeFolder
	} else if cfg.Dfirctl.HomeFolder == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("unable to get user home folder: %w", err)
		}
		cfg.Dfirctl.HomeFolder = filepath.Join(userHome, ".dfirctl")
	}

	expandedHomePath, err := files.ExpandPath(cfg.Dfirctl.HomeFolder)
	if err != nil {
		return fmt.Errorf("failed to expand new home path %q: %w", cfg.Dfirctl.HomeFolder, err)
	}
	cfg.Dfirctl.HomeFolder = expandedHomePath

	if err := files.CreateFolderIfNotExists(expandedHomePath); err != nil {
		return fmt.Errorf("failed to create home folder %q: %w", cfg.Dfirctl.HomeFolder, err)
	}
	return nil
}

// updateFolder updates a folder path in the configuration.
func updateFolder(folder *string, envVar, defaultSubFolder string, cfg *Config) error {
	if envVarValue := os.Getenv(envVar); envVarValue != "" {
		*folder = envVarValue
	} else if *folder == "" {
		*folder = filepath.Join(GetHome(cfg), defaultSubFolder)
	}

	expandedPath, err := files.ExpandPath(*folder)
	if err != nil {
		return fmt.Errorf("failed to expand path %q: %w", *folder, err)
	}
	*folder = expandedPath

	if err := files.CreateFolderIfNotExists(expandedPath); err != nil {
		return fmt.Errorf("failed to create folder %q: %w", expandedPath, err)
	}
	return nil
}

// updateServerURL resolves the analyzer endpoint from env, config, or default.
func updateServerURL(cfg *Config) error {
	if envURL := os.Getenv("DFIRCTL_SERVER_URL"); envURL != "" {
		cfg.Dfirctl.ServerURL = envURL
	} else if cfg.Dfirctl.ServerURL == "" {
		cfg.Dfirctl.ServerURL = DefaultServerURL
	}

	u, err := url.Parse(cfg.Dfirctl.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", cfg.Dfirctl.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server URL %q must use http or https", cfg.Dfirctl.ServerURL)
	}
	cfg.Dfirctl.ServerURL = strings.TrimRight(cfg.Dfirctl.ServerURL, "/")

	return nil
}

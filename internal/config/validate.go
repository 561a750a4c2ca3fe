package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// Validate checks the loaded config and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if err := ValidateIdentifier(c.Source.Dataset); err != nil {
		errs = append(errs, fmt.Errorf("source.dataset: %w", err))
	}

	switch c.Source.Driver {
	case "mysql", "postgres", "sqlite":
		if c.Source.Driver != c.Database.Driver {
			errs = append(errs, fmt.Errorf("source.driver %s needs database.driver %s, got %s",
				c.Source.Driver, c.Source.Driver, c.Database.Driver))
		}
	case "rest":
		if err := ValidateURL(c.Source.RESTURL); err != nil {
			errs = append(errs, fmt.Errorf("source.restURL: %w", err))
		}
		if strings.TrimSpace(c.Source.RESTKey) == "" {
			errs = append(errs, errors.New("source.restKey (SUPABASE_API_KEY) is required for the rest driver"))
		}
		if err := ValidateIdentifier(c.Source.RESTOrder); err != nil {
			errs = append(errs, fmt.Errorf("source.restOrder: %w", err))
		}
	case "csv":
		if err := ValidatePath(c.Source.CSVDir); err != nil {
			errs = append(errs, fmt.Errorf("source.csvDir: %w", err))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid source.driver: %s (allowed: mysql, postgres, sqlite, rest, csv)", c.Source.Driver))
	}

	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("invalid database.driver: %s (allowed: mysql, postgres, sqlite)", c.Database.Driver))
	}

	switch c.AI.Provider {
	case "openai", "anthropic":
	default:
		errs = append(errs, fmt.Errorf("invalid ai.provider: %s (allowed: openai, anthropic)", c.AI.Provider))
	}
	if c.AI.BaseURL != "" {
		if err := ValidateURL(c.AI.BaseURL); err != nil {
			errs = append(errs, fmt.Errorf("ai.baseURL: %w", err))
		}
	}

	if c.Minio.Enabled {
		if strings.TrimSpace(c.Minio.Endpoint) == "" {
			errs = append(errs, errors.New("minio.endpoint is required when minio is enabled"))
		}
		if strings.TrimSpace(c.Minio.BucketName) == "" {
			errs = append(errs, errors.New("minio.bucketName is required when minio is enabled"))
		}
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("invalid log.format: %s (allowed: json, console)", c.Log.Format))
	}

	return errors.Join(errs...)
}

// ValidateIdentifier accepts SQL-safe table names.
func ValidateIdentifier(name string) error {
	if !identifierRe.MatchString(name) {
		return fmt.Errorf("invalid identifier %q (letters, digits, underscore; max 63 chars)", name)
	}
	return nil
}

// ValidateURL validates http(s) URLs
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %s (allowed: http, https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// ValidatePath validates file paths (for security)
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	cleaned := filepath.Clean(path)
	if strings.Contains(cleaned, "..") {
		return fmt.Errorf("path traversal detected")
	}
	blocked := []string{"/etc", "/proc", "/sys", "/dev", "/boot"}
	for _, b := range blocked {
		if cleaned == b || strings.HasPrefix(cleaned, b+"/") {
			return fmt.Errorf("access to %s is not allowed", b)
		}
	}
	dangerous := []string{"$(", "`", "&", "|", ";", "\n", "\r"}
	for _, d := range dangerous {
		if strings.Contains(path, d) {
			return fmt.Errorf("invalid characters in path")
		}
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// Valid enum values for configuration fields.
var (
	ValidThemeNames = []string{"none", "default", "dracula", "nord", "gruvbox", "catppuccin"}
	ValidThemeModes = []string{"auto", "light", "dark"}
)

// Validate checks every field and returns all problems joined.
func (c Config) Validate() error {
	var errs []error

	errs = append(errs,
		validateURL(c.API.BaseURL, "api.base_url"),
		validateURL(c.Web.URL, "web.url"),
		validatePositive(c.API.Timeout, "api.timeout"),
		validatePositive(c.Cache.DefaultTTL, "cache.default_ttl"),
		validatePositive(c.Cache.CoffeeTTL, "cache.coffee_ttl"),
		validatePositive(c.Cache.CoffeeListTTL, "cache.coffee_list_ttl"),
		validatePositive(c.Cache.BrewLogTTL, "cache.brewlog_ttl"),
		validatePositive(c.Cache.BrewLogListTTL, "cache.brewlog_list_ttl"),
		validatePositive(c.AI.Timeout, "ai.timeout"),
		validateEnum(c.Theme.Name, "theme.name", ValidThemeNames),
		validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes),
	)

	if c.API.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("invalid api.rate_limit %v: must not be negative", c.API.RateLimit))
	}
	if c.AI.Tries < 1 || c.AI.Tries > MaxAITries {
		errs = append(errs, fmt.Errorf("invalid ai.tries %d: must be between 1 and %d", c.AI.Tries, MaxAITries))
	}

	return errors.Join(errs...)
}

// validateURL requires an absolute http or https URL.
func validateURL(raw, field string) error {
	if raw == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s %q: scheme must be %s", field, raw, formatOptions([]string{"http", "https"}))
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s %q: missing host", field, raw)
	}
	return nil
}

func validatePositive(d time.Duration, field string) error {
	if d <= 0 {
		return fmt.Errorf("invalid %s %s: must be positive", field, d)
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

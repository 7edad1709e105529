package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/raphi011/brewlog/internal/config"
	"github.com/raphi011/brewlog/internal/session"
)

// checkConfig reports a config file that fails to load. A missing file is
// fine, defaults apply.
func checkConfig(path string) []Issue {
	if path == "" {
		return nil
	}
	if _, err := config.LoadFile(path); err != nil {
		return []Issue{{
			Key:         path,
			Description: fmt.Sprintf("config file is invalid: %v", err),
			Hint:        "edit the file or recreate it with 'brewlog config init --force'",
		}}
	}
	return nil
}

// checkStorage reports a storage file that exists but cannot be read.
func checkStorage(store Store, path string) []Issue {
	if _, err := store.Keys(); err != nil {
		issue := Issue{
			Key:         path,
			Description: fmt.Sprintf("storage file is unreadable: %v", err),
		}
		if path != "" {
			issue.FixAction = FixResetStorage
		} else {
			issue.Hint = "remove the storage file and log in again"
		}
		return []Issue{issue}
	}
	return nil
}

// checkSession reports a token under the legacy key and a current token
// that is malformed or expired.
func checkSession(store Store, clock clockwork.Clock) []Issue {
	var issues []Issue

	current, hasCurrent, err := store.Get(session.TokenKey)
	if err != nil {
		return nil // reported by checkStorage
	}
	legacy, hasLegacy, _ := store.Get(session.LegacyTokenKey)

	effective := current
	switch {
	case hasLegacy && hasCurrent:
		issues = append(issues, Issue{
			Key:         session.LegacyTokenKey,
			Description: "a legacy token is stored alongside the current one",
			FixAction:   FixRemoveLegacyToken,
		})
	case hasLegacy && legacy != "":
		issues = append(issues, Issue{
			Key:         session.LegacyTokenKey,
			Description: fmt.Sprintf("token is stored under the legacy key %q", session.LegacyTokenKey),
			FixAction:   FixMigrateToken,
		})
		effective = legacy
	}

	if effective == "" {
		return issues
	}

	exp, err := session.ParseExpiry(effective)
	switch {
	case errors.Is(err, session.ErrNoExpiry):
	case err != nil:
		issues = append(issues, Issue{
			Key:         session.TokenKey,
			Description: "stored token is malformed",
			FixAction:   FixRemoveToken,
		})
	case !exp.After(clock.Now()):
		issues = append(issues, Issue{
			Key:         session.TokenKey,
			Description: fmt.Sprintf("stored token expired at %s", exp.Format("2006-01-02 15:04")),
			FixAction:   FixRemoveToken,
		})
	}
	return issues
}

// checkService reports an unreachable or unhealthy backend.
func checkService(ctx context.Context, health HealthChecker, baseURL string) []Issue {
	if health == nil {
		return nil
	}
	status, err := health.Health(ctx)
	if err != nil {
		return []Issue{{
			Key:         baseURL,
			Description: fmt.Sprintf("service is unreachable: %v", err),
			Hint:        "check api.base_url in the config or BREWLOG_API_URL",
		}}
	}
	if status != nil && status.Status != "" && status.Status != "ok" {
		return []Issue{{
			Key:         baseURL,
			Description: fmt.Sprintf("service reports status %q", status.Status),
			Hint:        "try again later",
		}}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

package doctor

import (
	"fmt"
	"io"
	"os"

	"github.com/raphi011/brewlog/internal/session"
	"github.com/raphi011/brewlog/internal/ui/styles"
)

// fixAllIssues applies fixes for all fixable issues in order.
func fixAllIssues(out io.Writer, env Env, report *Report) {
	for _, issue := range report.Issues {
		if !issue.Fixable() {
			continue
		}
		if err := fixIssue(env, issue); err != nil {
			fmt.Fprintf(out, "  %s Failed to fix %q: %v\n", styles.ErrorStyle.Render("✗"), issue.Key, err)
			report.Failed++
			continue
		}
		fmt.Fprintf(out, "  %s %s\n", styles.SuccessStyle.Render("✓"), fixedMessage(issue))
		report.Fixed++
	}

	fmt.Fprintf(out, "\nFixed %d issues", report.Fixed)
	if report.Failed > 0 {
		fmt.Fprintf(out, ", %d failed", report.Failed)
	}
	fmt.Fprintln(out)
}

func fixIssue(env Env, issue Issue) error {
	switch issue.FixAction {
	case FixMigrateToken:
		_, err := session.MigrateLegacyToken(env.Store)
		return err
	case FixRemoveLegacyToken:
		return env.Store.Remove(session.LegacyTokenKey)
	case FixRemoveToken:
		return env.Store.Remove(session.TokenKey, session.LegacyTokenKey)
	case FixResetStorage:
		if !fileExists(env.StorePath) {
			return nil
		}
		return os.Rename(env.StorePath, env.StorePath+".corrupt")
	}
	return fmt.Errorf("no fix for %q", issue.FixAction)
}

func fixedMessage(issue Issue) string {
	switch issue.FixAction {
	case FixMigrateToken:
		return fmt.Sprintf("Moved token from %q to %q", session.LegacyTokenKey, session.TokenKey)
	case FixRemoveLegacyToken:
		return fmt.Sprintf("Removed legacy %q entry", session.LegacyTokenKey)
	case FixRemoveToken:
		return "Removed stored token, run 'brewlog login' to sign in again"
	case FixResetStorage:
		return fmt.Sprintf("Moved unreadable storage file to %s.corrupt", issue.Key)
	}
	return "Fixed " + issue.Key
}

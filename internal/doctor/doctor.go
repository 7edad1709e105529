package doctor

import (
	"context"
	"fmt"
	"io"

	"github.com/jonboulle/clockwork"

	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/session"
	"github.com/raphi011/brewlog/internal/ui/styles"
)

// Store is the local storage doctor inspects and repairs.
type Store interface {
	session.Store
	Keys() ([]string, error)
}

// HealthChecker probes the backend.
type HealthChecker interface {
	Health(ctx context.Context) (*brew.HealthStatus, error)
}

// Env is what a doctor run inspects.
type Env struct {
	ConfigPath string
	Store      Store
	StorePath  string        // backing file of Store, moved aside by FixResetStorage
	Health     HealthChecker // nil skips the service check
	BaseURL    string
	Clock      clockwork.Clock
}

// Run performs diagnostic checks and optionally fixes issues, writing
// progress to out.
func Run(ctx context.Context, env Env, out io.Writer, fix bool) (Report, error) {
	if env.Store == nil {
		return Report{}, fmt.Errorf("doctor: no storage configured")
	}
	if env.Clock == nil {
		env.Clock = clockwork.NewRealClock()
	}

	var report Report
	add := func(category IssueCategory, issues []Issue) {
		for i := range issues {
			issues[i].Category = category
		}
		report.Issues = append(report.Issues, issues...)
	}

	fmt.Fprintln(out, "Checking config...")
	add(CategoryConfig, checkConfig(env.ConfigPath))

	fmt.Fprintln(out, "Checking local storage...")
	add(CategoryStorage, checkStorage(env.Store, env.StorePath))

	fmt.Fprintln(out, "Checking session...")
	add(CategorySession, checkSession(env.Store, env.Clock))

	if env.Health != nil {
		fmt.Fprintln(out, "Checking service...")
		add(CategoryService, checkService(ctx, env.Health, env.BaseURL))
	}

	if len(report.Issues) == 0 {
		fmt.Fprintf(out, "\n%s No issues found\n", styles.SuccessStyle.Render("✓"))
		return report, nil
	}

	fmt.Fprintf(out, "\nFound %d issues:\n", len(report.Issues))
	printIssuesByCategory(out, report.Issues)

	if fix {
		fmt.Fprintln(out)
		fixAllIssues(out, env, &report)
		return report, nil
	}

	if fixable(report.Issues) > 0 {
		fmt.Fprintln(out, "\nRun 'brewlog doctor --fix' to repair.")
	}
	return report, nil
}

// printIssuesByCategory prints issues grouped by category.
func printIssuesByCategory(out io.Writer, issues []Issue) {
	categories := []struct {
		cat   IssueCategory
		title string
	}{
		{CategoryConfig, "Config"},
		{CategoryStorage, "Storage"},
		{CategorySession, "Session"},
		{CategoryService, "Service"},
	}

	for _, c := range categories {
		var printed bool
		for _, issue := range issues {
			if issue.Category != c.cat {
				continue
			}
			if !printed {
				fmt.Fprintf(out, "\n  %s:\n", c.title)
				printed = true
			}
			marker := styles.WarningStyle.Render("⚠")
			if !issue.Fixable() {
				marker = styles.ErrorStyle.Render("✗")
			}
			fmt.Fprintf(out, "    %s %s\n", marker, issue.Description)
			if issue.Hint != "" {
				fmt.Fprintf(out, "      %s\n", styles.MutedStyle.Render("→ "+issue.Hint))
			}
		}
	}
}

func fixable(issues []Issue) int {
	var n int
	for _, issue := range issues {
		if issue.Fixable() {
			n++
		}
	}
	return n
}

package doctor

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryConfig represents problems with the config file.
	CategoryConfig IssueCategory = "config"
	// CategoryStorage represents problems with the local storage file.
	CategoryStorage IssueCategory = "storage"
	// CategorySession represents problems with the stored session token.
	CategorySession IssueCategory = "session"
	// CategoryService represents problems reaching the brew log service.
	CategoryService IssueCategory = "service"
)

// FixAction names what --fix does for an issue.
type FixAction string

const (
	// FixNone means the issue needs manual attention.
	FixNone FixAction = ""
	// FixMigrateToken moves a legacy token to the current key.
	FixMigrateToken FixAction = "migrate_token"
	// FixRemoveLegacyToken drops a legacy token shadowed by a current one.
	FixRemoveLegacyToken FixAction = "remove_legacy_token"
	// FixRemoveToken removes an expired or malformed token.
	FixRemoveToken FixAction = "remove_token"
	// FixResetStorage moves an unreadable storage file aside.
	FixResetStorage FixAction = "reset_storage"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string        // storage key or path
	Description string        // human-readable description
	Hint        string        // what to do when there is no automatic fix
	FixAction   FixAction     // what --fix would do
	Category    IssueCategory // issue category
}

// Fixable reports whether --fix can repair the issue.
func (i Issue) Fixable() bool {
	return i.FixAction != FixNone
}

// Report is the outcome of a doctor run.
type Report struct {
	Issues []Issue
	Fixed  int
	Failed int
}

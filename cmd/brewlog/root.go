package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/brewlog/internal/config"
	"github.com/raphi011/brewlog/internal/log"
	"github.com/raphi011/brewlog/internal/output"
	"github.com/raphi011/brewlog/internal/session"
	"github.com/raphi011/brewlog/internal/ui/styles"
)

// Command group IDs for organizing help output
const (
	GroupAuth    = "auth"
	GroupCoffee  = "coffee"
	GroupBrew    = "brew"
	GroupAI      = "ai"
	GroupUtility = "utility"
	GroupConfig  = "config"
)

// annotationRequiresAuth marks commands that need a restored session.
// Subcommands inherit it from their parent.
const annotationRequiresAuth = "requiresAuth"

var errNotLoggedIn = errors.New("not logged in (run 'brewlog login')")

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	var verbose, quiet bool

	rootCmd := &cobra.Command{
		Use:   "brewlog",
		Short: "Log coffee brews and get AI tasting help",
		Long: `brewlog is a command line client for the brew log service.

Keep track of your coffees and every brew, follow brewing guides,
and let the AI tasting assistant help you describe a cup or
suggest what to change next time.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := log.WithLogger(cmd.Context(), log.New(cmd.ErrOrStderr(), verbose, quiet))
			cmd.SetContext(ctx)

			// Skip setup for completion and help commands
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}

			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}

			cfg := config.FromContext(ctx)
			if cfg == nil {
				d := config.Default()
				cfg = &d
				ctx = config.WithConfig(ctx, cfg)
			}
			styles.Init(cfg.Theme)

			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx = withApp(ctx, a)
			cmd.SetContext(ctx)

			if !requiresAuth(cmd) {
				return nil
			}
			state, err := a.session.Bootstrap(ctx)
			if state == session.StateAuthenticated {
				return nil
			}
			if err != nil {
				return fmt.Errorf("restore session: %w", err)
			}
			return errNotLoggedIn
		},
		// Run is not set - shows help when no subcommand provided
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Trace requests and cache lookups")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupAuth, Title: "Account Commands:"},
		&cobra.Group{ID: GroupCoffee, Title: "Coffee Commands:"},
		&cobra.Group{ID: GroupBrew, Title: "Brew Commands:"},
		&cobra.Group{ID: GroupAI, Title: "AI Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Account commands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newSignupCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newProfileCmd())

	// Coffee commands
	rootCmd.AddCommand(newCoffeeCmd())

	// Brew commands
	rootCmd.AddCommand(newBrewCmd())
	rootCmd.AddCommand(newGuideCmd())

	// AI commands
	rootCmd.AddCommand(newAICmd())

	// Utility commands
	rootCmd.AddCommand(newOpenCmd())
	rootCmd.AddCommand(newDoctorCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// requiresAuth reports whether cmd or one of its parents carries the
// requiresAuth annotation.
func requiresAuth(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationRequiresAuth] == "true" {
			return true
		}
	}
	return false
}

// authenticated marks cmd as requiring a session.
func authenticated(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationRequiresAuth] = "true"
	return cmd
}

// run executes the CLI with the given arguments and streams.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
		loadedCfg = config.Default()
	}

	ctx = config.WithConfig(ctx, &loadedCfg)
	// Replaced in PersistentPreRunE once --verbose and --quiet are parsed
	ctx = log.WithLogger(ctx, log.New(stderr, false, false))
	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, stdout)

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.ExecuteContext(ctx)
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'brewlog -h' for help")
		cancel()
		os.Exit(1)
	}
}

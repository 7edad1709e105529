package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/brewlog/internal/api"
	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/output"
	"github.com/raphi011/brewlog/internal/session"
	"github.com/raphi011/brewlog/internal/ui/progress"
	"github.com/raphi011/brewlog/internal/ui/prompt"
	"github.com/raphi011/brewlog/internal/ui/static"
	"github.com/raphi011/brewlog/internal/ui/styles"
)

func newLoginCmd() *cobra.Command {
	var (
		email         string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Log in to the brew log service",
		GroupID: GroupAuth,
		Args:    cobra.NoArgs,
		Long: `Log in with your email and password.

Missing values are prompted for. The token is stored in ~/.brewlog
(or $BREWLOG_HOME) and reused until it expires.`,
		Example: `  brewlog login                                   # Prompt for everything
  brewlog login --email me@example.com
  echo "$PASSWORD" | brewlog login --email me@example.com --password-stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			out := output.FromContext(ctx)

			var err error
			if email == "" {
				email, err = ask("Email", "email", prompt.TextOptions{
					Placeholder: "you@example.com",
					Validate:    validator(brew.ValidEmail, "enter a valid email address"),
				})
				if err != nil {
					return err
				}
			}
			if !brew.ValidEmail(email) {
				return fmt.Errorf("invalid email address %q", email)
			}

			var password string
			if passwordStdin {
				password, err = readSecret(cmd.InOrStdin())
			} else {
				password, err = ask("Password", "password-stdin", prompt.TextOptions{Password: true})
			}
			if err != nil {
				return err
			}
			if password == "" {
				return errors.New("password is required")
			}

			user, err := progress.Run("Logging in...", func() (*brew.User, error) {
				return a.session.Login(ctx, email, password)
			})
			if err != nil {
				if api.IsUnauthorized(err) {
					return errors.New("invalid email or password")
				}
				return failure{}.explain(err)
			}

			out.Printf("%s Welcome back, %s!\n", styles.SuccessStyle.Render("✓"), user.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")

	return cmd
}

func newSignupCmd() *cobra.Command {
	var (
		req           brew.RegisterRequest
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:     "signup",
		Short:   "Create an account and log in",
		GroupID: GroupAuth,
		Args:    cobra.NoArgs,
		Long: `Create an account on the brew log service and log in with it.

The password needs at least 8 characters with an uppercase letter,
a lowercase letter and a number. The username is optional.`,
		Example: `  brewlog signup
  brewlog signup --email me@example.com --username barista`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			out := output.FromContext(ctx)

			var err error
			if req.Email == "" {
				req.Email, err = ask("Email", "email", prompt.TextOptions{
					Placeholder: "you@example.com",
					Validate:    validator(brew.ValidEmail, "enter a valid email address"),
				})
				if err != nil {
					return err
				}
			}
			if passwordStdin {
				req.Password, err = readSecret(cmd.InOrStdin())
			} else {
				req.Password, err = ask("Password", "password-stdin", prompt.TextOptions{
					Password: true,
					Validate: func(s string) error { return brew.ValidatePassword(s).Err() },
				})
			}
			if err != nil {
				return err
			}

			if err := validate(brew.ValidateRegister(req)); err != nil {
				return err
			}

			user, err := progress.Run("Creating account...", func() (*brew.User, error) {
				return a.session.Register(ctx, req)
			})
			if err != nil {
				if api.StatusOf(err) == http.StatusConflict {
					return errors.New("an account with this email already exists")
				}
				return failure{}.explain(err)
			}

			out.Printf("%s Welcome, %s!\n", styles.SuccessStyle.Render("✓"), user.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Username, "username", "", "Username (3-50 letters, numbers, _ or -)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "logout",
		Short:   "Log out and forget the stored token",
		GroupID: GroupAuth,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			out := output.FromContext(ctx)

			if err := a.session.Logout(ctx); err != nil {
				return fmt.Errorf("clear stored token: %w", err)
			}
			out.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "whoami",
		Short:   "Show the logged in user",
		GroupID: GroupAuth,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			out := output.FromContext(ctx)

			user, err := a.session.RequireUser()
			if err != nil {
				return errNotLoggedIn
			}

			expiry, expErr := a.session.TokenExpiry()

			if jsonOutput {
				type whoami struct {
					*brew.User
					ExpiresAt *time.Time `json:"expiresAt,omitempty"`
				}
				res := whoami{User: user}
				if expErr == nil {
					res.ExpiresAt = &expiry
				}
				return out.JSON(res)
			}

			fields := []static.Field{
				{Label: "User", Value: user.DisplayName()},
				{Label: "Email", Value: user.Email},
			}
			switch {
			case expErr == nil:
				fields = append(fields, static.Field{
					Label: "Session",
					Value: fmt.Sprintf("expires %s (in %s)", expiry.Local().Format("2006-01-02 15:04"), time.Until(expiry).Round(time.Minute)),
				})
			case errors.Is(expErr, session.ErrNoExpiry):
				fields = append(fields, static.Field{Label: "Session", Value: "does not expire"})
			}
			out.Print(static.RenderDetails("Logged in", fields))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return authenticated(cmd)
}

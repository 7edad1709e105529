package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/raphi011/brewlog/internal/api"
	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/output"
	"github.com/raphi011/brewlog/internal/ui/progress"
	"github.com/raphi011/brewlog/internal/ui/static"
	"github.com/raphi011/brewlog/internal/ui/styles"
)

var profileFailure = failure{resource: "User", forbidden: "You can only change your own profile."}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Short:   "Show or change your account",
		GroupID: GroupAuth,
		Args:    cobra.NoArgs,
	}

	cmd.AddCommand(newProfileShowCmd())
	cmd.AddCommand(newProfileUpdateCmd())
	cmd.AddCommand(newProfileDeleteCmd())

	return authenticated(cmd)
}

func newProfileShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			out := output.FromContext(ctx)

			user, err := progress.Run("Loading profile...", func() (*brew.User, error) {
				return a.client.Me(ctx)
			})
			if err != nil {
				return profileFailure.explain(err)
			}

			if jsonOutput {
				return out.JSON(user)
			}
			out.Print(static.RenderDetails(user.DisplayName(), []static.Field{
				{Label: "ID", Value: strconv.FormatInt(user.ID, 10)},
				{Label: "Username", Value: user.Username},
				{Label: "Email", Value: user.Email},
				{Label: "Member since", Value: dateOf(user.CreatedAt)},
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newProfileUpdateCmd() *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change your username or email",
		Args:  cobra.NoArgs,
		Long: `Change your username or email.

The username must be 3-50 characters of letters, numbers, _ and -.`,
		Example: `  brewlog profile update --username barista
  brewlog profile update --email new@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			out := output.FromContext(ctx)

			var req brew.UpdateProfileRequest
			if cmd.Flags().Changed("username") {
				req.Username = &username
			}
			if cmd.Flags().Changed("email") {
				req.Email = &email
			}
			if err := validate(brew.ValidateProfileUpdate(req)); err != nil {
				return err
			}

			user, err := progress.Run("Saving profile...", func() (*brew.User, error) {
				return a.client.UpdateMe(ctx, req)
			})
			if err != nil {
				if api.StatusOf(err) == http.StatusConflict {
					return errors.New("username or email is already taken")
				}
				return profileFailure.explain(err)
			}

			out.Printf("%s Profile updated (%s)\n", styles.SuccessStyle.Render("✓"), user.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "New username")
	cmd.Flags().StringVar(&email, "email", "", "New email")

	return cmd
}

func newProfileDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account and everything in it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			out := output.FromContext(ctx)

			user, _ := a.session.RequireUser()
			ok, err := confirm(fmt.Sprintf("Delete the account %s with all coffees and brews?", user.DisplayName()), yes)
			if err != nil {
				return err
			}
			if !ok {
				out.Println("Cancelled.")
				return nil
			}

			if err := a.client.DeleteMe(ctx); err != nil {
				return profileFailure.explain(err)
			}
			if err := a.session.Logout(ctx); err != nil {
				return fmt.Errorf("clear stored token: %w", err)
			}
			out.Println("Account deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Don't ask for confirmation")

	return cmd
}

// dateOf trims an RFC 3339 timestamp to its date.
func dateOf(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

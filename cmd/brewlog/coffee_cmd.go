package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/history"
	"github.com/raphi011/brewlog/internal/log"
	"github.com/raphi011/brewlog/internal/output"
	"github.com/raphi011/brewlog/internal/resolve"
	"github.com/raphi011/brewlog/internal/ui/progress"
	"github.com/raphi011/brewlog/internal/ui/prompt"
	"github.com/raphi011/brewlog/internal/ui/static"
	"github.com/raphi011/brewlog/internal/ui/styles"
)

var (
	coffeeFailure       = failure{resource: "Coffee", forbidden: "You can only update your own coffees."}
	coffeeDeleteFailure = failure{resource: "Coffee", forbidden: "You can only delete your own coffees."}
)

func newCoffeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "coffee",
		Short:   "Manage your coffees",
		Aliases: []string{"coffees"},
		GroupID: GroupCoffee,
		Args:    cobra.NoArgs,
	}

	cmd.AddCommand(newCoffeeListCmd())
	cmd.AddCommand(newCoffeeShowCmd())
	cmd.AddCommand(newCoffeeAddCmd())
	cmd.AddCommand(newCoffeeEditCmd())
	cmd.AddCommand(newCoffeeRmCmd())

	return authenticated(cmd)
}

func newCoffeeListCmd() *cobra.Command {
	var (
		filters    brew.CoffeeFilters
		refresh    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List coffees",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		Example: `  brewlog coffee list
  brewlog coffee list --origin Ethiopia
  brewlog coffee list --search guji --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			res, err := progress.Run("Loading coffees...", func() (*brew.CoffeeListResponse, error) {
				return a.client.ListCoffees(ctx, filters, refresh)
			})
			if err != nil {
				return coffeeFailure.explain(err)
			}

			if jsonOutput {
				return out.JSON(res)
			}

			if len(res.Coffees) == 0 {
				if filters != (brew.CoffeeFilters{}) {
					out.Println("No coffees match.")
				} else {
					out.Println("No coffees yet. Add one with 'brewlog coffee add'.")
				}
				return nil
			}

			rows := make([][]string, len(res.Coffees))
			for i, c := range res.Coffees {
				rows[i] = static.CoffeeTableRow(c)
			}
			out.Print(static.RenderTable(static.CoffeeHeaders, rows))
			if res.Total > len(res.Coffees) {
				l.Printf("%s\n", styles.MutedStyle.Render(fmt.Sprintf("Showing %d of %d coffees", len(res.Coffees), res.Total)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filters.Search, "search", "s", "", "Search names and descriptions")
	cmd.Flags().StringVar(&filters.Origin, "origin", "", "Filter by origin")
	cmd.Flags().StringVar(&filters.Roaster, "roaster", "", "Filter by roaster")
	cmd.Flags().IntVar(&filters.Limit, "limit", 0, "Maximum number of coffees")
	cmd.Flags().IntVar(&filters.Offset, "offset", 0, "Number of coffees to skip")
	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "Bypass the response cache")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newCoffeeShowCmd() *cobra.Command {
	var (
		refresh    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show a coffee and its brews",
		Args:  cobra.ExactArgs(1),
		Example: `  brewlog coffee show 12
  brewlog coffee show guji`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			id, err := resolve.Coffee(ctx, a.client, args[0])
			if err != nil {
				return coffeeFailure.explain(err)
			}

			var (
				coffee *brew.Coffee
				logs   *brew.BrewLogListResponse
			)
			_, err = progress.Run("Loading coffee...", func() (struct{}, error) {
				g, gctx := errgroup.WithContext(ctx)
				g.Go(func() (err error) {
					coffee, err = a.client.GetCoffee(gctx, id, refresh)
					return err
				})
				g.Go(func() (err error) {
					logs, err = a.client.ListBrewLogs(gctx, brew.BrewLogFilters{CoffeeID: id}, refresh)
					return err
				})
				return struct{}{}, g.Wait()
			})
			if err != nil {
				return coffeeFailure.explain(err)
			}

			if err := history.RecordAccess(a.historyPath, history.KindCoffee, coffee.ID, coffee.Name); err != nil {
				l.Debug("record history failed", "err", err)
			}

			if jsonOutput {
				return out.JSON(struct {
					*brew.Coffee
					BrewLogs []brew.BrewLog `json:"brewLogs"`
				}{coffee, logs.BrewLogs})
			}

			out.Print(static.RenderDetails(coffeeTitle(a, coffee), []static.Field{
				{Label: "ID", Value: strconv.FormatInt(coffee.ID, 10)},
				{Label: "Origin", Value: coffee.Origin},
				{Label: "Roaster", Value: coffee.Roaster},
				{Label: "Description", Value: coffee.Description},
				{Label: "Brews", Value: strconv.Itoa(logs.Total)},
			}))

			if len(logs.BrewLogs) == 0 {
				out.Println()
				out.Printf("No brews yet. Log one with 'brewlog brew add --coffee %d'.\n", coffee.ID)
				return nil
			}
			rows := make([][]string, len(logs.BrewLogs))
			for i, b := range logs.BrewLogs {
				rows[i] = static.BrewLogTableRow(b, coffee.Name)
			}
			out.Println()
			out.Print(static.RenderTable(static.BrewLogHeaders, rows))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "Bypass the response cache")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// coffeeTitle links the coffee name to its page in the web front end.
func coffeeTitle(a *app, c *brew.Coffee) string {
	return styles.FormatCoffeeRef(c.Name, webURL(a.cfg.Web.URL, fmt.Sprintf("/coffees/%d", c.ID)))
}

func newCoffeeAddCmd() *cobra.Command {
	var (
		req        brew.CreateCoffeeRequest
		fromText   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a coffee",
		Args:  cobra.NoArgs,
		Long: `Add a coffee to your collection.

With --from-text the AI reads the text of a bag label or shop page and
fills in the details. Flags still win over what it extracts. Pass "-"
to read the text from stdin.`,
		Example: `  brewlog coffee add --name "Guji Hambela" --origin Ethiopia --roaster "Tim Wendelboe"
  pbpaste | brewlog coffee add --from-text -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			out := output.FromContext(ctx)

			if fromText != "" {
				extracted, err := extractCoffee(ctx, a, cmd.InOrStdin(), fromText)
				if err != nil {
					return err
				}
				req = mergeCoffee(req, *extracted)
			}

			if strings.TrimSpace(req.Name) == "" {
				name, err := ask("Name", "name", prompt.TextOptions{Placeholder: "e.g. Ethiopia Guji"})
				if err != nil {
					return err
				}
				req.Name = name
			}

			if err := validate(brew.ValidateCreateCoffee(req)); err != nil {
				return err
			}

			coffee, err := progress.Run("Adding coffee...", func() (*brew.Coffee, error) {
				return a.client.CreateCoffee(ctx, req)
			})
			if err != nil {
				return coffeeFailure.explain(err)
			}

			if jsonOutput {
				return out.JSON(coffee)
			}
			out.Printf("%s Added %s (#%d)\n", styles.SuccessStyle.Render("✓"), coffee.Name, coffee.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Coffee name")
	cmd.Flags().StringVar(&req.Origin, "origin", "", "Country or region")
	cmd.Flags().StringVar(&req.Roaster, "roaster", "", "Roaster")
	cmd.Flags().StringVar(&req.Description, "description", "", "Free text description")
	cmd.Flags().StringVar(&fromText, "from-text", "", "Extract details from label text (- for stdin)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func extractCoffee(ctx context.Context, a *app, stdin io.Reader, text string) (*brew.CreateCoffeeRequest, error) {
	if text == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("--from-text: no text to extract from")
	}

	extracted, err := progress.Run("Reading label...", func() (*brew.CreateCoffeeRequest, error) {
		return a.client.ExtractCoffee(ctx, text, 0)
	})
	if err != nil {
		return nil, failure{}.explain(err)
	}
	return extracted, nil
}

// mergeCoffee fills the fields of req that are still empty from extracted.
func mergeCoffee(req, extracted brew.CreateCoffeeRequest) brew.CreateCoffeeRequest {
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = strings.TrimSpace(src)
		}
	}
	fill(&req.Name, extracted.Name)
	fill(&req.Origin, extracted.Origin)
	fill(&req.Roaster, extracted.Roaster)
	fill(&req.Description, extracted.Description)
	return req
}

func newCoffeeEditCmd() *cobra.Command {
	var name, origin, roaster, description string

	cmd := &cobra.Command{
		Use:   "edit <id|name>",
		Short: "Change a coffee's details",
		Args:  cobra.ExactArgs(1),
		Example: `  brewlog coffee edit 12 --roaster "Square Mile"
  brewlog coffee edit guji --description ""`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			out := output.FromContext(ctx)

			var req brew.UpdateCoffeeRequest
			flags := cmd.Flags()
			if flags.Changed("name") {
				req.Name = &name
			}
			if flags.Changed("origin") {
				req.Origin = &origin
			}
			if flags.Changed("roaster") {
				req.Roaster = &roaster
			}
			if flags.Changed("description") {
				req.Description = &description
			}
			if err := validate(brew.ValidateUpdateCoffee(req)); err != nil {
				return err
			}

			id, err := resolve.Coffee(ctx, a.client, args[0])
			if err != nil {
				return coffeeFailure.explain(err)
			}

			coffee, err := progress.Run("Saving coffee...", func() (*brew.Coffee, error) {
				return a.client.UpdateCoffee(ctx, id, req)
			})
			if err != nil {
				return coffeeFailure.explain(err)
			}

			out.Printf("%s Updated %s (#%d)\n", styles.SuccessStyle.Render("✓"), coffee.Name, coffee.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&origin, "origin", "", "New origin")
	cmd.Flags().StringVar(&roaster, "roaster", "", "New roaster")
	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func newCoffeeRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id|name>",
		Short:   "Delete a coffee",
		Aliases: []string{"remove", "delete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			id, err := resolve.Coffee(ctx, a.client, args[0])
			if err != nil {
				return coffeeFailure.explain(err)
			}
			coffee, err := a.client.GetCoffee(ctx, id, false)
			if err != nil {
				return coffeeFailure.explain(err)
			}

			ok, err := confirm(fmt.Sprintf("Delete %s (#%d)?", coffee.Name, coffee.ID), yes)
			if err != nil {
				return err
			}
			if !ok {
				out.Println("Cancelled.")
				return nil
			}

			if _, err := progress.Run("Deleting coffee...", func() (struct{}, error) {
				return struct{}{}, a.client.DeleteCoffee(ctx, id)
			}); err != nil {
				return coffeeDeleteFailure.explain(err)
			}
			if err := history.Forget(a.historyPath, history.KindCoffee, id); err != nil {
				l.Debug("forget history failed", "err", err)
			}

			out.Printf("%s Deleted %s\n", styles.SuccessStyle.Render("✓"), coffee.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Don't ask for confirmation")

	return cmd
}

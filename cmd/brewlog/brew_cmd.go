package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/raphi011/brewlog/internal/api"
	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/history"
	"github.com/raphi011/brewlog/internal/log"
	"github.com/raphi011/brewlog/internal/output"
	"github.com/raphi011/brewlog/internal/resolve"
	"github.com/raphi011/brewlog/internal/ui/progress"
	"github.com/raphi011/brewlog/internal/ui/static"
	"github.com/raphi011/brewlog/internal/ui/styles"
	"github.com/raphi011/brewlog/internal/ui/wizard/flows"
)

var (
	brewLogFailure       = failure{resource: "Brew log", forbidden: "You can only update your own brew logs."}
	brewLogDeleteFailure = failure{resource: "Brew log", forbidden: "You can only delete your own brew logs."}
	brewLogCreateFailure = failure{resource: "Coffee", forbidden: "You can only log brews of your own coffees."}
)

func newBrewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "brew",
		Short:   "Log and review brews",
		Aliases: []string{"brews"},
		GroupID: GroupBrew,
		Args:    cobra.NoArgs,
	}

	cmd.AddCommand(newBrewListCmd())
	cmd.AddCommand(newBrewShowCmd())
	cmd.AddCommand(newBrewAddCmd())
	cmd.AddCommand(newBrewEditCmd())
	cmd.AddCommand(newBrewRmCmd())

	return authenticated(cmd)
}

// brewFlags are the measurement flags shared by brew add and brew edit.
type brewFlags struct {
	method   string
	dose     float64
	water    float64
	grind    string
	temp     float64
	brewTime string
	rating   int
	notes    string
}

func (f *brewFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.method, "method", "m", "", "Brew method (e.g. V60, AeroPress, French Press)")
	fs.Float64Var(&f.dose, "dose", 0, "Coffee weight in grams")
	fs.Float64Var(&f.water, "water", 0, "Water weight in grams")
	fs.StringVar(&f.grind, "grind", "", "Grind size (e.g. Medium-Fine)")
	fs.Float64Var(&f.temp, "temp", 0, "Water temperature in °C")
	fs.StringVar(&f.brewTime, "time", "", "Brew time as m:ss or minutes")
	fs.IntVar(&f.rating, "rating", 0, "Rating from 1 to 5")
	fs.StringVar(&f.notes, "notes", "", "Tasting notes")
}

// apply copies the flags given on the command line into p.
func (f *brewFlags) apply(cmd *cobra.Command, p *brew.BrewParams) brew.ValidationErrors {
	fs := cmd.Flags()
	if fs.Changed("method") {
		p.BrewMethod = brew.CanonicalMethod(f.method)
	}
	if fs.Changed("dose") {
		p.CoffeeWeight = ptr(f.dose)
	}
	if fs.Changed("water") {
		p.WaterWeight = ptr(f.water)
	}
	if fs.Changed("grind") {
		p.GrindSize = ptr(f.grind)
	}
	if fs.Changed("temp") {
		p.WaterTemperature = ptr(f.temp)
	}
	if fs.Changed("time") {
		total, errs := brew.ValidateBrewTime(f.brewTime)
		if len(errs) > 0 {
			return errs
		}
		p.BrewTime = ptr(total)
	}
	if fs.Changed("rating") {
		p.Rating = ptr(f.rating)
	}
	if fs.Changed("notes") {
		p.TastingNotes = ptr(f.notes)
	}
	return nil
}

func newBrewListCmd() *cobra.Command {
	var (
		filters    brew.BrewLogFilters
		coffeeArg  string
		refresh    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List brews",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		Long: `List your brew logs, newest first.

With --user the public brew logs of another user are listed instead.`,
		Example: `  brewlog brew list
  brewlog brew list --coffee guji --rating 5
  brewlog brew list --user 7 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if coffeeArg != "" {
				id, err := resolve.Coffee(ctx, a.client, coffeeArg)
				if err != nil {
					return coffeeFailure.explain(err)
				}
				filters.CoffeeID = id
			}
			if filters.BrewMethod != "" {
				filters.BrewMethod = brew.CanonicalMethod(filters.BrewMethod)
			}

			res, err := progress.Run("Loading brews...", func() (*brew.BrewLogListResponse, error) {
				return a.client.ListBrewLogs(ctx, filters, refresh)
			})
			if err != nil {
				return failure{resource: "User"}.explain(err)
			}

			if jsonOutput {
				return out.JSON(res)
			}

			if len(res.BrewLogs) == 0 {
				out.Println("No brews found.")
				return nil
			}

			names := map[int64]string{}
			if filters.UserID == 0 {
				names = coffeeNames(ctx, a, res.BrewLogs)
			}
			rows := make([][]string, len(res.BrewLogs))
			for i, b := range res.BrewLogs {
				rows[i] = static.BrewLogTableRow(b, names[b.CoffeeID])
			}
			out.Print(static.RenderTable(static.BrewLogHeaders, rows))
			if res.Total > len(res.BrewLogs) {
				l.Printf("%s\n", styles.MutedStyle.Render(fmt.Sprintf("Showing %d of %d brews", len(res.BrewLogs), res.Total)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&coffeeArg, "coffee", "c", "", "Only brews of this coffee (id or name)")
	cmd.Flags().StringVarP(&filters.BrewMethod, "method", "m", "", "Only brews with this method")
	cmd.Flags().IntVar(&filters.Rating, "rating", 0, "Only brews with this rating")
	cmd.Flags().Int64Var(&filters.UserID, "user", 0, "List the public brews of this user ID")
	cmd.Flags().IntVar(&filters.Limit, "limit", 0, "Maximum number of brews")
	cmd.Flags().IntVar(&filters.Offset, "offset", 0, "Number of brews to skip")
	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "Bypass the response cache")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// coffeeNames looks up the names of coffees the logs don't embed.
// A failed lookup leaves the ids in place of names.
func coffeeNames(ctx context.Context, a *app, logs []brew.BrewLog) map[int64]string {
	names := map[int64]string{}
	missing := false
	for _, b := range logs {
		if b.Coffee == nil {
			missing = true
			break
		}
	}
	if !missing {
		return names
	}

	res, err := a.client.ListCoffees(ctx, brew.CoffeeFilters{}, false)
	if err != nil {
		log.FromContext(ctx).Debug("coffee lookup failed", "err", err)
		return names
	}
	for _, c := range res.Coffees {
		names[c.ID] = c.Name
	}
	return names
}

func newBrewShowCmd() *cobra.Command {
	var (
		refresh    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a brew",
		Long: `Show the details of a brew log.

Without an id the brew log you looked at last is shown again.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			var id int64
			if len(args) == 1 {
				var err error
				if id, err = resolve.ID("brew log", args[0]); err != nil {
					return err
				}
			} else {
				h, err := history.Load(a.historyPath)
				if err != nil {
					return err
				}
				last, ok := h.MostRecent(history.KindBrewLog)
				if !ok {
					return errors.New("no brew log viewed yet (pass an id)")
				}
				id = last.ID
			}

			b, err := progress.Run("Loading brew...", func() (*brew.BrewLog, error) {
				return a.client.GetBrewLog(ctx, id, refresh)
			})
			if err != nil {
				if api.IsNotFound(err) {
					if ferr := history.Forget(a.historyPath, history.KindBrewLog, id); ferr != nil {
						l.Debug("forget history failed", "err", ferr)
					}
				}
				return brewLogFailure.explain(err)
			}

			coffeeName := ""
			if b.Coffee != nil {
				coffeeName = b.Coffee.Name
			} else if c, err := a.client.GetCoffee(ctx, b.CoffeeID, false); err == nil {
				coffeeName = c.Name
			}

			label := fmt.Sprintf("#%d", b.ID)
			if coffeeName != "" {
				label = fmt.Sprintf("%s #%d", coffeeName, b.ID)
			}
			if err := history.RecordAccess(a.historyPath, history.KindBrewLog, b.ID, label); err != nil {
				l.Debug("record history failed", "err", err)
			}

			if jsonOutput {
				return out.JSON(b)
			}

			title := "Brew #" + strconv.FormatInt(b.ID, 10)
			if coffeeName != "" {
				ref := styles.FormatCoffeeRef(coffeeName, webURL(a.cfg.Web.URL, fmt.Sprintf("/coffees/%d", b.CoffeeID)))
				title += " · " + ref
			}
			out.Print(static.RenderDetails(title, static.BrewLogDetails(*b)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "Bypass the response cache")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// brewAddOptions holds what brew add and guide brew collect before saving.
type brewAddOptions struct {
	coffee      string
	seed        brew.BrewParams
	flags       *brewFlags
	interactive bool
	jsonOutput  bool
	title       string
}

func newBrewAddCmd() *cobra.Command {
	var (
		opts      = brewAddOptions{flags: &brewFlags{}}
		guideSlug string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a brew",
		Args:  cobra.NoArgs,
		Long: `Log a brew of one of your coffees.

Measurements come from flags, from a guide preset with --guide, or from
the interactive form with -i. The form opens with every known value
filled in and asks only for the rest.

Limits: coffee 0-200 g, water 0-3000 g, temperature 0-100 °C,
time up to 60:00, rating 1-5.`,
		Example: `  brewlog brew add --coffee guji -m V60 --dose 15 --water 250 --time 3:00 --rating 4
  brewlog brew add --coffee 12 --guide v60 --rating 5
  brewlog brew add -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if guideSlug != "" {
				seed, title, err := guideSeed(guideSlug)
				if err != nil {
					return err
				}
				opts.seed = seed
				opts.title = title
			}
			return addBrew(cmd, opts)
		},
	}

	opts.flags.register(cmd)
	cmd.Flags().StringVarP(&opts.coffee, "coffee", "c", "", "Coffee (id or name)")
	cmd.Flags().StringVarP(&guideSlug, "guide", "g", "", "Start from a guide preset")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Fill in the brew with a form")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// addBrew validates and saves a new brew log.
func addBrew(cmd *cobra.Command, opts brewAddOptions) error {
	ctx := cmd.Context()
	a := appFrom(ctx)
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	params := opts.seed
	if errs := opts.flags.apply(cmd, &params); len(errs) > 0 {
		return validationError(errs)
	}

	var coffeeID int64
	if opts.coffee != "" {
		id, err := resolve.Coffee(ctx, a.client, opts.coffee)
		if err != nil {
			return coffeeFailure.explain(err)
		}
		coffeeID = id
	}

	req := brew.CreateBrewLogRequest{CoffeeID: coffeeID, BrewParams: params}
	if opts.interactive {
		if !isInteractive() {
			return errors.New("-i needs a terminal")
		}
		coffees, err := progress.Run("Loading coffees...", func() (*brew.CoffeeListResponse, error) {
			return a.client.ListCoffees(ctx, brew.CoffeeFilters{}, false)
		})
		if err != nil {
			return coffeeFailure.explain(err)
		}
		res, err := flows.BrewInteractive(flows.BrewFormParams{
			Title:    opts.title,
			Coffees:  coffees.Coffees,
			CoffeeID: coffeeID,
			Seed:     params,
		})
		if err != nil {
			return err
		}
		if res.Cancelled {
			out.Println("Cancelled.")
			return nil
		}
		req = res.Request
	}

	if err := validate(brew.ValidateCreateBrewLog(req)); err != nil {
		return err
	}

	created, err := progress.Run("Saving brew...", func() (*brew.BrewLog, error) {
		return a.client.CreateBrewLog(ctx, req)
	})
	if err != nil {
		return brewLogCreateFailure.explain(err)
	}

	if err := history.RecordAccess(a.historyPath, history.KindBrewLog, created.ID, fmt.Sprintf("#%d", created.ID)); err != nil {
		l.Debug("record history failed", "err", err)
	}

	if opts.jsonOutput {
		return out.JSON(created)
	}
	msg := fmt.Sprintf("%s Logged brew #%d", styles.SuccessStyle.Render("✓"), created.ID)
	if ratio := brew.FormatRatio(created.CoffeeWeight, created.WaterWeight); ratio != "" {
		msg += styles.MutedStyle.Render(" (" + ratio + ")")
	}
	out.Println(msg)
	return nil
}

func newBrewEditCmd() *cobra.Command {
	var (
		flags       brewFlags
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a brew",
		Args:  cobra.ExactArgs(1),
		Example: `  brewlog brew edit 42 --rating 5 --notes "Peach, jasmine"
  brewlog brew edit 42 -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			out := output.FromContext(ctx)

			id, err := resolve.ID("brew log", args[0])
			if err != nil {
				return err
			}

			var req brew.UpdateBrewLogRequest
			if errs := flags.apply(cmd, &req.BrewParams); len(errs) > 0 {
				return validationError(errs)
			}

			if interactive {
				if !isInteractive() {
					return errors.New("-i needs a terminal")
				}
				req, err = editBrewInteractive(ctx, a, id, req.BrewParams)
				if errors.Is(err, errCancelled) {
					out.Println("Cancelled.")
					return nil
				}
				if err != nil {
					return err
				}
			} else if req == (brew.UpdateBrewLogRequest{}) {
				return errors.New("nothing to update (pass at least one measurement flag or -i)")
			}

			if err := validate(brew.ValidateParams(req.BrewParams, false)); err != nil {
				return err
			}

			updated, err := progress.Run("Saving brew...", func() (*brew.BrewLog, error) {
				return a.client.UpdateBrewLog(ctx, id, req)
			})
			if err != nil {
				return brewLogFailure.explain(err)
			}

			out.Printf("%s Updated brew #%d\n", styles.SuccessStyle.Render("✓"), updated.ID)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Edit the brew with a form")

	return cmd
}

// editBrewInteractive opens the brew form on the stored brew with the
// flag values applied on top.
func editBrewInteractive(ctx context.Context, a *app, id int64, override brew.BrewParams) (brew.UpdateBrewLogRequest, error) {
	current, err := a.client.GetBrewLog(ctx, id, true)
	if err != nil {
		return brew.UpdateBrewLogRequest{}, brewLogFailure.explain(err)
	}
	coffees, err := a.client.ListCoffees(ctx, brew.CoffeeFilters{}, false)
	if err != nil {
		return brew.UpdateBrewLogRequest{}, coffeeFailure.explain(err)
	}

	seed := mergeParams(current.Params(), override)
	res, err := flows.BrewInteractive(flows.BrewFormParams{
		Title:    fmt.Sprintf("Edit brew #%d", id),
		Coffees:  coffees.Coffees,
		CoffeeID: current.CoffeeID,
		Seed:     seed,
	})
	if err != nil {
		return brew.UpdateBrewLogRequest{}, err
	}
	if res.Cancelled {
		return brew.UpdateBrewLogRequest{}, errCancelled
	}
	return brew.UpdateBrewLogRequest{BrewParams: res.Request.BrewParams}, nil
}

// mergeParams returns base with every field set in override replaced.
func mergeParams(base, override brew.BrewParams) brew.BrewParams {
	if override.BrewMethod != "" {
		base.BrewMethod = override.BrewMethod
	}
	if override.CoffeeWeight != nil {
		base.CoffeeWeight = override.CoffeeWeight
	}
	if override.WaterWeight != nil {
		base.WaterWeight = override.WaterWeight
	}
	if override.GrindSize != nil {
		base.GrindSize = override.GrindSize
	}
	if override.WaterTemperature != nil {
		base.WaterTemperature = override.WaterTemperature
	}
	if override.BrewTime != nil {
		base.BrewTime = override.BrewTime
	}
	if override.Rating != nil {
		base.Rating = override.Rating
	}
	if override.TastingNotes != nil {
		base.TastingNotes = override.TastingNotes
	}
	return base
}

func newBrewRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Short:   "Delete a brew",
		Aliases: []string{"remove", "delete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			id, err := resolve.ID("brew log", args[0])
			if err != nil {
				return err
			}

			ok, err := confirm(fmt.Sprintf("Delete brew #%d?", id), yes)
			if err != nil {
				return err
			}
			if !ok {
				out.Println("Cancelled.")
				return nil
			}

			if _, err := progress.Run("Deleting brew...", func() (struct{}, error) {
				return struct{}{}, a.client.DeleteBrewLog(ctx, id)
			}); err != nil {
				return brewLogDeleteFailure.explain(err)
			}
			if err := history.Forget(a.historyPath, history.KindBrewLog, id); err != nil {
				l.Debug("forget history failed", "err", err)
			}

			out.Printf("%s Deleted brew #%d\n", styles.SuccessStyle.Render("✓"), id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Don't ask for confirmation")

	return cmd
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/guides"
	"github.com/raphi011/brewlog/internal/output"
	"github.com/raphi011/brewlog/internal/ui/static"
	"github.com/raphi011/brewlog/internal/ui/styles"
)

func newGuideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "guide",
		Short:   "Brewing guides",
		Aliases: []string{"guides"},
		GroupID: GroupBrew,
		Args:    cobra.NoArgs,
	}

	cmd.AddCommand(newGuideListCmd())
	cmd.AddCommand(newGuideShowCmd())
	cmd.AddCommand(newGuideBrewCmd())

	return cmd
}

// guideSeed returns the preset of the guide with slug and a form title.
func guideSeed(slug string) (brew.BrewParams, string, error) {
	g, ok := guides.FindBySlug(slug)
	if !ok {
		return brew.BrewParams{}, "", fmt.Errorf("unknown guide %q (available: %s)", slug, strings.Join(guides.Slugs(), ", "))
	}
	return g.Preset.Params(), "Log a brew: " + g.Title, nil
}

func newGuideListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List brewing guides",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			all := guides.All()
			if jsonOutput {
				return out.JSON(all)
			}

			rows := make([][]string, len(all))
			for i, g := range all {
				rows[i] = []string{g.Slug, g.Title, g.Brewer}
			}
			out.Print(static.RenderTable([]string{"SLUG", "TITLE", "BREWER"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newGuideShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "show <slug>",
		Short:     "Show a brewing guide",
		Args:      cobra.ExactArgs(1),
		ValidArgs: guides.Slugs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			g, ok := guides.FindBySlug(args[0])
			if !ok {
				return fmt.Errorf("unknown guide %q (available: %s)", args[0], strings.Join(guides.Slugs(), ", "))
			}

			p := g.Preset.Params()
			out.Print(static.RenderDetails(g.Title, []static.Field{
				{Label: "Brewer", Value: g.Brewer},
				{Label: "Recipe", Value: presetSummary(p)},
			}))
			if g.Description != "" {
				out.Println()
				out.Println(g.Description)
			}
			out.Println()
			for i, step := range g.Steps {
				out.Printf("%s %s\n", styles.PrimaryStyle.Render(fmt.Sprintf("%2d.", i+1)), step.Text)
				if step.Alt != "" {
					out.Printf("    %s\n", styles.MutedStyle.Render(step.Alt))
				}
			}
			out.Println()
			out.Println(styles.MutedStyle.Render(fmt.Sprintf("Log it with 'brewlog guide brew %s'.", g.Slug)))
			return nil
		},
	}

	return cmd
}

// presetSummary renders a preset as "15 g : 250 g · Medium-Fine · 93 °C · 3:00".
func presetSummary(p brew.BrewParams) string {
	var parts []string
	if p.CoffeeWeight != nil && p.WaterWeight != nil {
		parts = append(parts, fmt.Sprintf("%g g : %g g (%s)", *p.CoffeeWeight, *p.WaterWeight, brew.FormatRatio(p.CoffeeWeight, p.WaterWeight)))
	}
	if p.GrindSize != nil {
		parts = append(parts, *p.GrindSize)
	}
	if p.WaterTemperature != nil {
		parts = append(parts, fmt.Sprintf("%g °C", *p.WaterTemperature))
	}
	if p.BrewTime != nil {
		parts = append(parts, brew.FormatBrewTime(*p.BrewTime))
	}
	return strings.Join(parts, " · ")
}

func newGuideBrewCmd() *cobra.Command {
	opts := brewAddOptions{flags: &brewFlags{}}
	var noForm bool

	cmd := &cobra.Command{
		Use:       "brew <slug>",
		Short:     "Log a brew that follows a guide",
		Args:      cobra.ExactArgs(1),
		ValidArgs: guides.Slugs(),
		Long: `Log a brew starting from the guide's preset.

On a terminal the brew form opens with the preset filled in. Flags
override preset values.`,
		Example: `  brewlog guide brew v60
  brewlog guide brew chemex --coffee guji --rating 4 --no-form`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, title, err := guideSeed(args[0])
			if err != nil {
				return err
			}
			opts.seed = seed
			opts.title = title
			opts.interactive = !noForm && isInteractive()
			return addBrew(cmd, opts)
		},
	}

	opts.flags.register(cmd)
	cmd.Flags().StringVarP(&opts.coffee, "coffee", "c", "", "Coffee (id or name)")
	cmd.Flags().BoolVar(&noForm, "no-form", false, "Save without opening the form")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")

	return authenticated(cmd)
}

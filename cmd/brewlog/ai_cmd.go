package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/log"
	"github.com/raphi011/brewlog/internal/output"
	"github.com/raphi011/brewlog/internal/resolve"
	"github.com/raphi011/brewlog/internal/tasting"
	"github.com/raphi011/brewlog/internal/ui/progress"
	"github.com/raphi011/brewlog/internal/ui/prompt"
	"github.com/raphi011/brewlog/internal/ui/static"
	"github.com/raphi011/brewlog/internal/ui/styles"
)

func newAICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ai",
		Short:   "AI brewing assistant",
		GroupID: GroupAI,
		Args:    cobra.NoArgs,
	}

	cmd.AddCommand(newRecommendCmd())
	cmd.AddCommand(newTasteCmd())

	return authenticated(cmd)
}

func newRecommendCmd() *cobra.Command {
	var (
		goal       string
		copyResult bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "recommend <brew-id>",
		Short: "Suggest one change for the next brew",
		Args:  cobra.ExactArgs(1),
		Long: `Ask the AI what to change next time to reach a goal.

Suggested goals: ` + strings.Join(brew.RecommendationGoals, ", ") + `.
Any other goal in your own words works too.`,
		Example: `  brewlog ai recommend 42 --goal "more sweetness"
  brewlog ai recommend 42 --goal "less bitterness" --copy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			id, err := resolve.ID("brew log", args[0])
			if err != nil {
				return err
			}

			if goal == "" {
				if !isInteractive() {
					return fmt.Errorf("--goal is required (e.g. %q)", brew.RecommendationGoals[0])
				}
				res, err := prompt.Select("What should the next brew have?", brew.RecommendationGoals)
				if err != nil {
					return err
				}
				if res.Cancelled {
					return errCancelled
				}
				goal = res.Value
			}

			b, err := a.client.GetBrewLog(ctx, id, false)
			if err != nil {
				return brewLogFailure.explain(err)
			}

			req := brew.BrewRecommendationRequest{
				BrewLog: brew.RecommendationBrew{CoffeeID: b.CoffeeID, BrewParams: b.Params()},
				Goal:    goal,
			}
			rec, err := progress.Run("Thinking...", func() (*brew.BrewRecommendationResponse, error) {
				return a.client.Recommend(ctx, req, 0)
			})
			if err != nil {
				return failure{}.explain(err)
			}

			if jsonOutput {
				return out.JSON(rec)
			}

			change := strings.TrimSpace(rec.Change.Variable + " " + rec.Change.Delta)
			out.Print(static.RenderDetails("For "+goal, []static.Field{
				{Label: "Change", Value: styles.PrimaryStyle.Render(change)},
			}))
			if rec.Explanation != "" {
				out.Println()
				out.Println(rec.Explanation)
			}

			if copyResult {
				text := change
				if rec.Explanation != "" {
					text += "\n\n" + rec.Explanation
				}
				if err := clipboard.WriteAll(text); err != nil {
					l.Printf("%s\n", styles.WarningStyle.Render("Could not copy to clipboard: "+err.Error()))
				} else {
					l.Printf("%s\n", styles.MutedStyle.Render("Copied to clipboard."))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "What the next brew should have")
	cmd.Flags().BoolVar(&copyResult, "copy", false, "Copy the suggestion to the clipboard")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	_ = cmd.RegisterFlagCompletionFunc("goal", cobra.FixedCompletions(brew.RecommendationGoals, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func newTasteCmd() *cobra.Command {
	var (
		method string
		brewID int64
	)

	cmd := &cobra.Command{
		Use:   "taste",
		Short: "Describe a cup with the tasting assistant",
		Args:  cobra.NoArgs,
		Long: `Answer a few questions about the cup and get tasting notes.

Each question builds on the earlier answers. Pick "Back" to change an
answer, or "Finish" once the notes say enough. With --brew the notes
can be saved to that brew log.`,
		Example: `  brewlog ai taste
  brewlog ai taste --brew 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a := appFrom(ctx)
			out := output.FromContext(ctx)

			if !isInteractive() {
				return errors.New("the tasting assistant needs a terminal")
			}

			if brewID != 0 && method == "" {
				b, err := a.client.GetBrewLog(ctx, brewID, false)
				if err != nil {
					return brewLogFailure.explain(err)
				}
				method = b.BrewMethod
			}

			notes, err := runTasting(ctx, tasting.New(a.client, brew.CanonicalMethod(method)), cmd.ErrOrStderr())
			if errors.Is(err, errCancelled) {
				out.Println("Cancelled.")
				return nil
			}
			if err != nil {
				return err
			}

			out.Print(static.RenderDetails("Tasting notes", nil))
			out.Println(notes)

			if brewID == 0 {
				return nil
			}
			save, err := confirm(fmt.Sprintf("Save to brew #%d?", brewID), false)
			if err != nil || !save {
				return err
			}
			req := brew.UpdateBrewLogRequest{BrewParams: brew.BrewParams{TastingNotes: &notes}}
			if _, err := a.client.UpdateBrewLog(ctx, brewID, req); err != nil {
				return brewLogFailure.explain(err)
			}
			out.Printf("%s Saved notes to brew #%d\n", styles.SuccessStyle.Render("✓"), brewID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "", "Brew method, given to the assistant as context")
	cmd.Flags().Int64Var(&brewID, "brew", 0, "Brew log the notes are for")

	return cmd
}

const (
	choiceBack   = "← Back"
	choiceFinish = "✓ Finish"
)

// runTasting walks through the assistant's questions until the user
// finishes and returns the composed notes.
func runTasting(ctx context.Context, asst *tasting.Assistant, stderr io.Writer) (string, error) {
	q, err := loadQuestion(ctx, stderr, asst, func() (*brew.AIQuestion, error) {
		return progress.Run("Preparing questions...", func() (*brew.AIQuestion, error) { return asst.Start(ctx) })
	})
	if err != nil {
		return "", err
	}

	for {
		choices := make([]prompt.Choice, 0, len(q.Options)+2)
		for _, o := range q.Options {
			desc := ""
			if o.Value == asst.Selected() {
				desc = "current answer"
			}
			choices = append(choices, prompt.Choice{Label: o.Label, Description: desc})
		}
		if asst.Step() > 1 {
			choices = append(choices, prompt.Choice{Label: choiceBack})
		}
		if asst.CanFinish("") {
			choices = append(choices, prompt.Choice{Label: choiceFinish, Description: asst.Notes("")})
		}

		title := fmt.Sprintf("%d. %s", asst.Step(), q.Text)
		if q.Hint != "" {
			title += "\n" + styles.MutedStyle.Render(q.Hint)
		}
		res, err := prompt.SelectChoice(title, choices)
		if err != nil {
			return "", err
		}
		if res.Cancelled {
			return "", errCancelled
		}

		switch {
		case res.Index < len(q.Options):
			value := q.Options[res.Index].Value
			next, err := loadQuestion(ctx, stderr, asst, func() (*brew.AIQuestion, error) {
				return progress.Run("Thinking...", func() (*brew.AIQuestion, error) { return asst.Next(ctx, value) })
			})
			if err != nil {
				return "", err
			}
			q = next
		case res.Value == choiceBack:
			asst.Back()
			q = asst.Current()
		case res.Value == choiceFinish:
			return asst.Notes(""), nil
		}
	}
}

// loadQuestion runs load and offers to retry while it fails.
func loadQuestion(ctx context.Context, stderr io.Writer, asst *tasting.Assistant, load func() (*brew.AIQuestion, error)) (*brew.AIQuestion, error) {
	q, err := load()
	for err != nil {
		fmt.Fprintln(stderr, styles.ErrorStyle.Render(failure{}.explain(err).Error()))
		again, cerr := confirm("Try again?", false)
		if cerr != nil {
			return nil, cerr
		}
		if !again {
			return nil, errCancelled
		}
		q, err = progress.Run("Retrying...", func() (*brew.AIQuestion, error) { return asst.Retry(ctx) })
	}
	return q, nil
}

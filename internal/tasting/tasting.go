// Package tasting runs the AI tasting assistant conversation.
//
// The service generates one question at a time from the answers given so
// far. The assistant keeps the questions and answers in order, lets the
// user step back and change an answer, and turns the chosen options into
// tasting notes.
package tasting

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/raphi011/brewlog/internal/brew"
)

// ErrNoQuestion is returned when an answer is given before a question
// was loaded.
var ErrNoQuestion = errors.New("no question loaded")

// QuestionSource generates the next tasting question.
type QuestionSource interface {
	NextQuestion(ctx context.Context, req brew.AIQuestionRequest, tries int) (*brew.AIQuestion, error)
}

// Assistant holds the state of one tasting conversation.
// It is not safe for concurrent use.
type Assistant struct {
	src       QuestionSource
	context   *brew.AIContext
	questions []brew.AIQuestion
	answers   []brew.AIAnswer
	current   int
}

// New starts an empty conversation. brewMethod is passed to the service as
// context when set.
func New(src QuestionSource, brewMethod string) *Assistant {
	a := &Assistant{src: src}
	if brewMethod != "" {
		a.context = &brew.AIContext{BrewMethod: brewMethod}
	}
	return a
}

// Start loads the first question if none is loaded yet.
func (a *Assistant) Start(ctx context.Context) (*brew.AIQuestion, error) {
	if q := a.Current(); q != nil {
		return q, nil
	}
	return a.load(ctx, 1)
}

// Current returns the question at the current step, or nil while it is
// not loaded.
func (a *Assistant) Current() *brew.AIQuestion {
	if a.current < len(a.questions) {
		q := a.questions[a.current]
		return &q
	}
	return nil
}

// Step returns the 1-based number of the current question.
func (a *Assistant) Step() int {
	return a.current + 1
}

// Selected returns the recorded answer for the current question, or "".
func (a *Assistant) Selected() string {
	if a.current < len(a.answers) {
		return a.answers[a.current].Value
	}
	return ""
}

// Answers returns the recorded answers in order.
func (a *Assistant) Answers() []brew.AIAnswer {
	return slices.Clone(a.answers)
}

// Next records value as the answer to the current question and moves on,
// fetching the following question if it is not loaded yet. Changing an
// earlier answer discards the questions generated after it.
func (a *Assistant) Next(ctx context.Context, value string) (*brew.AIQuestion, error) {
	q := a.Current()
	if q == nil {
		return nil, ErrNoQuestion
	}
	if !slices.ContainsFunc(q.Options, func(o brew.AIOption) bool { return o.Value == value }) {
		return nil, fmt.Errorf("%q is not an option for %q", value, q.Text)
	}

	answer := brew.AIAnswer{ID: q.QuestionID, Value: value}
	if a.current < len(a.answers) {
		if a.answers[a.current] != answer {
			a.answers = a.answers[:a.current]
			a.questions = a.questions[:a.current+1]
			a.answers = append(a.answers, answer)
		}
	} else {
		a.answers = append(a.answers, answer)
	}

	a.current++
	if next := a.Current(); next != nil {
		return next, nil
	}
	return a.load(ctx, 1)
}

// Back moves to the previous question and reports whether it could.
func (a *Assistant) Back() bool {
	if a.current == 0 {
		return false
	}
	a.current--
	return true
}

// Retry reloads the current question after a failed load, allowing one
// internal retry.
func (a *Assistant) Retry(ctx context.Context) (*brew.AIQuestion, error) {
	if q := a.Current(); q != nil {
		return q, nil
	}
	return a.load(ctx, 2)
}

// Reset discards the conversation.
func (a *Assistant) Reset() {
	a.questions = nil
	a.answers = nil
	a.current = 0
}

func (a *Assistant) load(ctx context.Context, tries int) (*brew.AIQuestion, error) {
	req := brew.AIQuestionRequest{
		Answers: slices.Clone(a.answers[:min(a.current, len(a.answers))]),
		Context: a.context,
	}
	if req.Answers == nil {
		req.Answers = []brew.AIAnswer{}
	}
	q, err := a.src.NextQuestion(ctx, req, tries)
	if err != nil {
		return nil, err
	}
	if a.current < len(a.questions) {
		return a.Current(), nil
	}
	a.questions = append(a.questions, *q)
	return a.Current(), nil
}

// CanFinish reports whether there is anything to turn into notes, counting
// pending as a selection for the current question.
func (a *Assistant) CanFinish(pending string) bool {
	return len(a.answers) > 0 || (a.Current() != nil && pending != "")
}

// Notes composes tasting notes from the labels of the chosen options.
// pending, when set, is used as the answer to the current question.
func (a *Assistant) Notes(pending string) string {
	answers := slices.Clone(a.answers)
	if q := a.Current(); q != nil && pending != "" {
		answer := brew.AIAnswer{ID: q.QuestionID, Value: pending}
		if a.current < len(answers) {
			answers[a.current] = answer
		} else {
			answers = append(answers, answer)
		}
	}

	var parts []string
	for i, ans := range answers {
		if i >= len(a.questions) {
			break
		}
		for _, o := range a.questions[i].Options {
			if o.Value == ans.Value {
				parts = append(parts, o.Label)
				break
			}
		}
	}
	return strings.Join(parts, ", ")
}

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/log"
	"github.com/raphi011/brewlog/internal/retry"
)

const (
	aiRecommendationPath = "/api/v1/ai/recommendation"
	aiExtractPath        = "/api/v1/ai/extract-coffee"

	aiInitialBackoff = 500 * time.Millisecond
)

// AIError is an AI request failure with a message fit for the user.
type AIError struct {
	Message string
	Err     error
}

func (e *AIError) Error() string { return e.Message }
func (e *AIError) Unwrap() error { return e.Err }

func mapAIError(err error) error {
	if err == nil {
		return nil
	}
	switch StatusOf(err) {
	case http.StatusRequestTimeout:
		return &AIError{Message: "Request timed out. Please try again.", Err: err}
	case http.StatusBadGateway:
		return &AIError{Message: "AI provider error. Please retry shortly.", Err: err}
	}
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return &AIError{Message: se.Message, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &AIError{Message: "Request timed out. Please try again.", Err: err}
	}
	return &AIError{Message: err.Error(), Err: err}
}

// classifyAI retries anything except client errors the service will
// answer the same way again.
func classifyAI(err error) retry.Action {
	switch status := StatusOf(err); {
	case status == http.StatusTooManyRequests:
		return retry.After
	case status == http.StatusRequestTimeout:
		return retry.Retry
	case status == http.StatusNotImplemented:
		return retry.Stop
	case status >= 400 && status < 500:
		return retry.Stop
	}
	return retry.Retry
}

// postAI posts body with up to tries attempts and exponential backoff
// starting at 500ms. tries <= 0 uses the configured default.
func (c *Client) postAI(ctx context.Context, path string, body, out any, tries int) error {
	if tries <= 0 {
		tries = c.aiTries
	}
	l := log.FromContext(ctx)
	policy := retry.Policy{
		MaxAttempts:      tries,
		InitialBackoff:   aiInitialBackoff,
		RateLimitBackoff: 2 * aiInitialBackoff,
		AttemptTimeout:   c.aiTimeout,
		Clock:            c.clock,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			l.Debug("retrying AI request", "attempt", attempt, "backoff", backoff, "err", err)
		},
	}
	err := retry.DoVoid(ctx, policy, classifyAI, func(ctx context.Context) error {
		return c.send(ctx, http.MethodPost, path, body, out)
	})
	return mapAIError(err)
}

// NextQuestion asks the tasting assistant for the next question given the
// answers so far.
func (c *Client) NextQuestion(ctx context.Context, req brew.AIQuestionRequest, tries int) (*brew.AIQuestion, error) {
	if req.Answers == nil {
		req.Answers = []brew.AIAnswer{}
	}
	var out brew.AIQuestion
	if err := c.postAI(ctx, aiRecommendationPath, req, &out, tries); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recommend asks how to change a brew toward goal.
func (c *Client) Recommend(ctx context.Context, req brew.BrewRecommendationRequest, tries int) (*brew.BrewRecommendationResponse, error) {
	var out brew.BrewRecommendationResponse
	if err := c.postAI(ctx, aiRecommendationPath, req, &out, tries); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExtractCoffee asks the AI to pull coffee details out of free text.
func (c *Client) ExtractCoffee(ctx context.Context, text string, tries int) (*brew.CreateCoffeeRequest, error) {
	var out brew.CreateCoffeeRequest
	if err := c.postAI(ctx, aiExtractPath, brew.ExtractCoffeeRequest{Text: text}, &out, tries); err != nil {
		return nil, err
	}
	return &out, nil
}

package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raphi011/brewlog/internal/api"
	"github.com/raphi011/brewlog/internal/brew"
)

var errSessionExpired = errors.New("session expired (run 'brewlog login')")

// failure describes what a command was doing when a request failed.
type failure struct {
	resource  string // "Coffee", "Brew log"
	forbidden string // shown on 403
}

// explain turns an API error into the message shown to the user.
func (f failure) explain(err error) error {
	if err == nil {
		return nil
	}

	var verrs brew.ValidationErrors
	if errors.As(err, &verrs) {
		return validationError(verrs)
	}
	var aiErr *api.AIError
	if errors.As(err, &aiErr) {
		return aiErr
	}

	switch api.StatusOf(err) {
	case http.StatusUnauthorized:
		return errSessionExpired
	case http.StatusForbidden:
		if f.forbidden != "" {
			return errors.New(f.forbidden)
		}
		return errors.New("You don't have permission to do that.")
	case http.StatusNotFound:
		if f.resource != "" {
			return fmt.Errorf("%s not found", f.resource)
		}
		return errors.New("not found")
	case 0:
		return err
	}
	return errors.New(api.MessageOf(err))
}

// validationError lists every invalid field on its own line.
func validationError(errs brew.ValidationErrors) error {
	var b strings.Builder
	b.WriteString("invalid input:")
	for _, e := range errs {
		fmt.Fprintf(&b, "\n  %s: %s", e.Field, e.Message)
	}
	return errors.New(b.String())
}

// validate runs a client-side check and formats its problems.
func validate(errs brew.ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return validationError(errs)
}

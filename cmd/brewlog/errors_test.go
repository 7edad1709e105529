package main

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/raphi011/brewlog/internal/api"
	"github.com/raphi011/brewlog/internal/brew"
)

func statusErr(status int, msg string) error {
	return fmt.Errorf("get: %w", &api.StatusError{Status: status, Message: msg, Method: http.MethodGet, Path: "/api/v1/coffees/1"})
}

func TestFailureExplain(t *testing.T) {
	t.Parallel()

	plain := errors.New("dial tcp: connection refused")
	aiErr := &api.AIError{Message: "Request timed out. Please try again."}

	tests := []struct {
		name    string
		failure failure
		err     error
		want    string
	}{
		{"unauthorized", coffeeFailure, statusErr(401, "expired"), errSessionExpired.Error()},
		{"forbidden with message", coffeeFailure, statusErr(403, ""), "You can only update your own coffees."},
		{"forbidden without message", failure{}, statusErr(403, ""), "You don't have permission to do that."},
		{"not found", brewLogFailure, statusErr(404, ""), "Brew log not found"},
		{"not found without resource", failure{}, statusErr(404, ""), "not found"},
		{"server message", coffeeFailure, statusErr(500, "database unavailable"), "database unavailable"},
		{"transport error", coffeeFailure, plain, plain.Error()},
		{"ai error", coffeeFailure, fmt.Errorf("wrap: %w", aiErr), aiErr.Message},
		{
			"validation",
			coffeeFailure,
			brew.ValidationErrors{{Field: "name", Message: "is required"}},
			"invalid input:\n  name: is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.failure.explain(tt.err)
			if got == nil || got.Error() != tt.want {
				t.Errorf("explain() = %v, want %q", got, tt.want)
			}
		})
	}

	if err := coffeeFailure.explain(nil); err != nil {
		t.Errorf("explain(nil) = %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := validate(nil); err != nil {
		t.Errorf("validate(nil) = %v", err)
	}
	err := validate(brew.ValidationErrors{
		{Field: "coffeeWeight", Message: "must be between 0 and 200 g"},
		{Field: "rating", Message: "must be between 1 and 5"},
	})
	want := "invalid input:\n  coffeeWeight: must be between 0 and 200 g\n  rating: must be between 1 and 5"
	if err == nil || err.Error() != want {
		t.Errorf("validate() = %v, want %q", err, want)
	}
}

func TestWebURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base, path, want string
	}{
		{"https://brew.example", "", "https://brew.example"},
		{"https://brew.example/", "/coffees/1", "https://brew.example/coffees/1"},
		{"https://brew.example", "brewlogs", "https://brew.example/brewlogs"},
	}
	for _, tt := range tests {
		if got := webURL(tt.base, tt.path); got != tt.want {
			t.Errorf("webURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
	if got := webURL("", ""); got == "" {
		t.Error("empty base should fall back to the default web URL")
	}
}

func TestMergeCoffee(t *testing.T) {
	t.Parallel()

	got := mergeCoffee(
		brew.CreateCoffeeRequest{Name: "My name", Roaster: "  "},
		brew.CreateCoffeeRequest{Name: "Extracted", Origin: " Kenya ", Roaster: "Square Mile", Description: "Blackcurrant"},
	)
	want := brew.CreateCoffeeRequest{Name: "My name", Origin: "Kenya", Roaster: "Square Mile", Description: "Blackcurrant"}
	if got != want {
		t.Errorf("mergeCoffee() = %+v, want %+v", got, want)
	}
}

func TestMergeParams(t *testing.T) {
	t.Parallel()

	base := brew.BrewParams{
		BrewMethod:   brew.MethodV60,
		CoffeeWeight: ptr(15.0),
		WaterWeight:  ptr(250.0),
		Rating:       ptr(3),
	}
	got := mergeParams(base, brew.BrewParams{Rating: ptr(5), TastingNotes: ptr("Peach")})

	if got.BrewMethod != brew.MethodV60 || *got.CoffeeWeight != 15 || *got.WaterWeight != 250 {
		t.Errorf("unset overrides should keep the base, got %+v", got)
	}
	if *got.Rating != 5 || got.TastingNotes == nil || *got.TastingNotes != "Peach" {
		t.Errorf("overrides should win, got rating %d notes %v", *got.Rating, got.TastingNotes)
	}
	if *base.Rating != 3 {
		t.Error("mergeParams must not modify base")
	}
}

// Package resolve turns command arguments into coffee IDs.
//
// A numeric argument is taken as the ID. Anything else is fuzzy-matched
// against the names of the user's coffees.
package resolve

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/brewlog/internal/brew"
)

// MaxCandidates limits the candidates listed in an ambiguity error.
const MaxCandidates = 5

// CoffeeLister lists the user's coffees.
type CoffeeLister interface {
	ListCoffees(ctx context.Context, f brew.CoffeeFilters, refresh bool) (*brew.CoffeeListResponse, error)
}

// AmbiguousError is returned when several coffees match equally well.
type AmbiguousError struct {
	Query      string
	Candidates []brew.Coffee
}

func (e *AmbiguousError) Error() string {
	names := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		names = append(names, fmt.Sprintf("%s (#%d)", c.Name, c.ID))
	}
	return fmt.Sprintf("%q matches several coffees: %s", e.Query, strings.Join(names, ", "))
}

// coffeeSource implements fuzzy.Source over coffee names.
type coffeeSource []brew.Coffee

func (s coffeeSource) String(i int) string { return s[i].Name }
func (s coffeeSource) Len() int            { return len(s) }

// Match picks the coffee best matching query. An exact case-insensitive
// name wins outright; otherwise the top fuzzy score must be unique.
func Match(query string, coffees []brew.Coffee) (*brew.Coffee, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty coffee name")
	}

	var exact []brew.Coffee
	for _, c := range coffees {
		if strings.EqualFold(c.Name, query) {
			exact = append(exact, c)
		}
	}
	switch len(exact) {
	case 1:
		return &exact[0], nil
	case 0:
	default:
		return nil, &AmbiguousError{Query: query, Candidates: exact}
	}

	matches := fuzzy.FindFrom(query, coffeeSource(coffees))
	if len(matches) == 0 {
		return nil, fmt.Errorf("no coffee matches %q (run 'brewlog coffee list' to see your coffees)", query)
	}

	best := matches[0].Score
	var top []brew.Coffee
	for _, m := range matches {
		if m.Score != best {
			break
		}
		top = append(top, coffees[m.Index])
	}
	if len(top) > 1 {
		return nil, &AmbiguousError{Query: query, Candidates: top[:min(len(top), MaxCandidates)]}
	}
	return &top[0], nil
}

// Coffee resolves arg to a coffee ID. Numeric arguments are returned as
// is without a request.
func Coffee(ctx context.Context, lister CoffeeLister, arg string) (int64, error) {
	if id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64); err == nil {
		if id <= 0 {
			return 0, fmt.Errorf("invalid coffee ID %d", id)
		}
		return id, nil
	}

	list, err := lister.ListCoffees(ctx, brew.CoffeeFilters{}, false)
	if err != nil {
		return 0, fmt.Errorf("list coffees: %w", err)
	}
	c, err := Match(arg, list.Coffees)
	if err != nil {
		return 0, err
	}
	return c.ID, nil
}

// ID parses a positive numeric ID argument.
func ID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q", kind, arg)
	}
	return id, nil
}

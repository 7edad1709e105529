package styles

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Symbols holds the icon set based on nerdfont configuration
type Symbols struct {
	Coffee    string
	Brew      string
	StarFull  string
	StarEmpty string
	Check     string
	Cross     string
}

var defaultSymbols = Symbols{
	Coffee:    "●",
	Brew:      "◆",
	StarFull:  "★",
	StarEmpty: "☆",
	Check:     "✓",
	Cross:     "✕",
}

var nerdfontSymbols = Symbols{
	Coffee:    "\uf0f4", // nf-fa-coffee
	Brew:      "\uf0c3", // nf-fa-flask
	StarFull:  "\uf005", // nf-fa-star
	StarEmpty: "\uf006", // nf-fa-star_o
	Check:     "\uf00c", // nf-fa-check
	Cross:     "\uf00d", // nf-fa-close
}

var (
	useNerdfont    bool
	currentSymbols = defaultSymbols
)

// SetNerdfont enables or disables nerd font symbols
func SetNerdfont(enabled bool) {
	useNerdfont = enabled
	if enabled {
		currentSymbols = nerdfontSymbols
	} else {
		currentSymbols = defaultSymbols
	}
}

// NerdfontEnabled returns whether nerd font symbols are enabled
func NerdfontEnabled() bool {
	return useNerdfont
}

// CurrentSymbols returns the current symbol set
func CurrentSymbols() Symbols {
	return currentSymbols
}

// Stars returns rating as filled and empty stars out of outOf, unstyled.
// Values are clamped to [0, outOf].
func Stars(rating, outOf int) string {
	rating = min(max(rating, 0), outOf)
	return strings.Repeat(currentSymbols.StarFull, rating) +
		strings.Repeat(currentSymbols.StarEmpty, outOf-rating)
}

// FormatRating renders a 1-5 rating as colored stars, or "-" when unrated.
func FormatRating(rating *int) string {
	if rating == nil || *rating <= 0 {
		return MutedStyle.Render("-")
	}
	return WarningStyle.Render(Stars(*rating, 5))
}

// Link wraps text in an OSC 8 hyperlink to url. An empty url returns the
// text unchanged.
func Link(url, text string) string {
	if url == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}

// FormatCoffeeRef returns the coffee name underlined and linked to its page
// on the web front end.
func FormatCoffeeRef(name, url string) string {
	if url == "" {
		return AccentStyle.Render(name)
	}
	return Link(url, AccentStyle.Underline(true).Render(name))
}

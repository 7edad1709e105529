package brew

import (
	"slices"
	"strings"
)

// Brew methods offered when logging a brew. The service accepts any
// non-empty method; these are the suggestions.
const (
	MethodV60         = "V60"
	MethodAeropress   = "Aeropress"
	MethodChemex      = "Chemex"
	MethodKalitaWave  = "Kalita Wave"
	MethodFrenchPress = "French Press"
	MethodEspresso    = "Espresso"
	MethodPourOver    = "Pour Over"
	MethodColdBrew    = "Cold Brew"
	MethodOther       = "Other"
)

// Methods lists the suggested brew methods in display order.
var Methods = []string{
	MethodV60,
	MethodAeropress,
	MethodChemex,
	MethodKalitaWave,
	MethodFrenchPress,
	MethodEspresso,
	MethodPourOver,
	MethodColdBrew,
	MethodOther,
}

// GrindSizes lists grind sizes from finest to coarsest.
var GrindSizes = []string{
	"Extra Fine",
	"Fine",
	"Medium-Fine",
	"Medium",
	"Medium-Coarse",
	"Coarse",
	"Extra Coarse",
}

// CanonicalMethod maps a case-insensitive method name onto its suggested
// spelling. Unknown methods are returned trimmed but otherwise unchanged.
func CanonicalMethod(method string) string {
	method = strings.TrimSpace(method)
	for _, m := range Methods {
		if strings.EqualFold(m, method) {
			return m
		}
	}
	return method
}

// IsKnownGrindSize reports whether size is one of GrindSizes.
func IsKnownGrindSize(size string) bool {
	return slices.ContainsFunc(GrindSizes, func(s string) bool {
		return strings.EqualFold(s, strings.TrimSpace(size))
	})
}

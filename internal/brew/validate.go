package brew

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits enforced before a brew log is submitted.
const (
	MaxCoffeeWeight     = 200
	MaxWaterWeight      = 3000
	MaxWaterTemperature = 100
	MaxBrewMinutes      = 60
	MaxBrewSeconds      = 59
	MaxBrewTime         = 3600
	MinRating           = 1
	MaxRating           = 5
)

// Limits enforced before a coffee is submitted.
const (
	MaxCoffeeName    = 255
	MaxCoffeeOrigin  = 100
	MaxCoffeeRoaster = 255
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{3,50}$`)
)

// FieldError is a single invalid field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field of a submission.
// A non-empty ValidationErrors blocks submission.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 1 {
		return "invalid input: " + v[0].Error()
	}
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("invalid input (%d problems): %s", len(v), strings.Join(parts, "; "))
}

// Err returns v as an error, or nil if there are no problems.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v *ValidationErrors) add(field, format string, args ...any) {
	*v = append(*v, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// ValidateParams checks brew measurements against the service limits.
// requireMethod is true for new brews; updates may omit the method.
func ValidateParams(p BrewParams, requireMethod bool) ValidationErrors {
	var errs ValidationErrors

	if requireMethod && strings.TrimSpace(p.BrewMethod) == "" {
		errs.add("brewMethod", "is required")
	}
	if p.CoffeeWeight != nil && (*p.CoffeeWeight < 0 || *p.CoffeeWeight > MaxCoffeeWeight) {
		errs.add("coffeeWeight", "must be between 0 and %d g", MaxCoffeeWeight)
	}
	if p.WaterWeight != nil && (*p.WaterWeight < 0 || *p.WaterWeight > MaxWaterWeight) {
		errs.add("waterWeight", "must be between 0 and %d g", MaxWaterWeight)
	}
	if p.WaterTemperature != nil && (*p.WaterTemperature < 0 || *p.WaterTemperature > MaxWaterTemperature) {
		errs.add("waterTemperature", "must be between 0 and %d °C", MaxWaterTemperature)
	}
	if p.BrewTime != nil && (*p.BrewTime < 0 || *p.BrewTime > MaxBrewTime) {
		errs.add("brewTime", "must be between 0 and %d seconds", MaxBrewTime)
	}
	if p.Rating != nil && (*p.Rating < MinRating || *p.Rating > MaxRating) {
		errs.add("rating", "must be between %d and %d", MinRating, MaxRating)
	}
	return errs
}

// ValidateCreateBrewLog checks a new brew log before submission.
func ValidateCreateBrewLog(req CreateBrewLogRequest) ValidationErrors {
	var errs ValidationErrors
	if req.CoffeeID <= 0 {
		errs.add("coffeeId", "a coffee must be selected")
	}
	return append(errs, ValidateParams(req.BrewParams, true)...)
}

// ValidateBrewTimeParts checks minutes and seconds entered separately and
// returns the total in seconds.
func ValidateBrewTimeParts(minutes, seconds int) (int, ValidationErrors) {
	var errs ValidationErrors
	if minutes < 0 || minutes > MaxBrewMinutes {
		errs.add("brewTime", "minutes must be between 0 and %d", MaxBrewMinutes)
	}
	if seconds < 0 || seconds > MaxBrewSeconds {
		errs.add("brewTime", "seconds must be between 0 and %d", MaxBrewSeconds)
	}
	total := minutes*60 + seconds
	if len(errs) == 0 && total > MaxBrewTime {
		errs.add("brewTime", "must be at most %d seconds", MaxBrewTime)
	}
	return total, errs
}

// ValidateBrewTime parses "m:ss" or whole minutes and checks the minutes
// and seconds separately, so "1:75" is rejected rather than read as 2:15.
func ValidateBrewTime(s string) (int, ValidationErrors) {
	if _, err := ParseBrewTime(s); err != nil {
		return 0, ValidationErrors{{Field: "brewTime", Message: err.Error()}}
	}
	minPart, secPart, _ := strings.Cut(strings.TrimSpace(s), ":")
	minutes, _ := strconv.Atoi(minPart)
	seconds := 0
	if secPart != "" {
		seconds, _ = strconv.Atoi(secPart)
	}
	return ValidateBrewTimeParts(minutes, seconds)
}

// ValidateCreateCoffee checks a new coffee before submission.
func ValidateCreateCoffee(req CreateCoffeeRequest) ValidationErrors {
	var errs ValidationErrors
	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs.add("name", "is required")
	} else if utf8.RuneCountInString(name) > MaxCoffeeName {
		errs.add("name", "must be at most %d characters", MaxCoffeeName)
	}
	if utf8.RuneCountInString(req.Origin) > MaxCoffeeOrigin {
		errs.add("origin", "must be at most %d characters", MaxCoffeeOrigin)
	}
	if utf8.RuneCountInString(req.Roaster) > MaxCoffeeRoaster {
		errs.add("roaster", "must be at most %d characters", MaxCoffeeRoaster)
	}
	return errs
}

// ValidateUpdateCoffee checks a coffee update before submission.
func ValidateUpdateCoffee(req UpdateCoffeeRequest) ValidationErrors {
	var errs ValidationErrors
	if req.Name == nil && req.Origin == nil && req.Roaster == nil && req.Description == nil {
		errs.add("coffee", "at least one field must be provided")
		return errs
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			errs.add("name", "must not be empty")
		} else if utf8.RuneCountInString(name) > MaxCoffeeName {
			errs.add("name", "must be at most %d characters", MaxCoffeeName)
		}
	}
	if req.Origin != nil && utf8.RuneCountInString(*req.Origin) > MaxCoffeeOrigin {
		errs.add("origin", "must be at most %d characters", MaxCoffeeOrigin)
	}
	if req.Roaster != nil && utf8.RuneCountInString(*req.Roaster) > MaxCoffeeRoaster {
		errs.add("roaster", "must be at most %d characters", MaxCoffeeRoaster)
	}
	return errs
}

// ValidEmail reports whether email looks like an address.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidUsername reports whether username is 3-50 letters, digits,
// underscores or hyphens.
func ValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidatePassword checks the password rules used at sign up.
func ValidatePassword(password string) ValidationErrors {
	var errs ValidationErrors
	if len(password) < MinPasswordLength {
		errs.add("password", "must be at least %d characters long", MinPasswordLength)
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		errs.add("password", "must contain at least one uppercase letter")
	}
	if !lower {
		errs.add("password", "must contain at least one lowercase letter")
	}
	if !digit {
		errs.add("password", "must contain at least one number")
	}
	return errs
}

// ValidateRegister checks a sign up before submission.
func ValidateRegister(req RegisterRequest) ValidationErrors {
	var errs ValidationErrors
	if !ValidEmail(req.Email) {
		errs.add("email", "format is invalid")
	}
	if req.Username != "" && !ValidUsername(req.Username) {
		errs.add("username", "must be 3-50 characters and contain only letters, numbers, underscores, and hyphens")
	}
	return append(errs, ValidatePassword(req.Password)...)
}

// ValidateProfileUpdate checks a profile update before submission.
func ValidateProfileUpdate(req UpdateProfileRequest) ValidationErrors {
	var errs ValidationErrors
	if req.Username == nil && req.Email == nil {
		errs.add("profile", "at least one field must be provided")
		return errs
	}
	if req.Username != nil && !ValidUsername(*req.Username) {
		errs.add("username", "must be 3-50 characters and contain only letters, numbers, underscores, and hyphens")
	}
	if req.Email != nil && !ValidEmail(*req.Email) {
		errs.add("email", "format is invalid")
	}
	return errs
}

package brew

import (
	"errors"
	"strings"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestValidateCreateBrewLog(t *testing.T) {
	t.Parallel()

	valid := CreateBrewLogRequest{
		CoffeeID: 1,
		BrewParams: BrewParams{
			BrewMethod:       "V60",
			CoffeeWeight:     ptr(15.0),
			WaterWeight:      ptr(250.0),
			WaterTemperature: ptr(93.0),
			BrewTime:         ptr(180),
			Rating:           ptr(4),
		},
	}

	tests := []struct {
		name   string
		modify func(r *CreateBrewLogRequest)
		fields []string
	}{
		{name: "valid", modify: func(*CreateBrewLogRequest) {}},
		{name: "missing coffee", modify: func(r *CreateBrewLogRequest) { r.CoffeeID = 0 }, fields: []string{"coffeeId"}},
		{name: "missing method", modify: func(r *CreateBrewLogRequest) { r.BrewMethod = "  " }, fields: []string{"brewMethod"}},
		{name: "coffee weight too high", modify: func(r *CreateBrewLogRequest) { r.CoffeeWeight = ptr(200.5) }, fields: []string{"coffeeWeight"}},
		{name: "coffee weight at limit", modify: func(r *CreateBrewLogRequest) { r.CoffeeWeight = ptr(200.0) }},
		{name: "negative water", modify: func(r *CreateBrewLogRequest) { r.WaterWeight = ptr(-1.0) }, fields: []string{"waterWeight"}},
		{name: "water too high", modify: func(r *CreateBrewLogRequest) { r.WaterWeight = ptr(3001.0) }, fields: []string{"waterWeight"}},
		{name: "boiling is fine", modify: func(r *CreateBrewLogRequest) { r.WaterTemperature = ptr(100.0) }},
		{name: "too hot", modify: func(r *CreateBrewLogRequest) { r.WaterTemperature = ptr(101.0) }, fields: []string{"waterTemperature"}},
		{name: "brew time too long", modify: func(r *CreateBrewLogRequest) { r.BrewTime = ptr(3601) }, fields: []string{"brewTime"}},
		{name: "rating zero", modify: func(r *CreateBrewLogRequest) { r.Rating = ptr(0) }, fields: []string{"rating"}},
		{name: "rating six", modify: func(r *CreateBrewLogRequest) { r.Rating = ptr(6) }, fields: []string{"rating"}},
		{name: "optional fields omitted", modify: func(r *CreateBrewLogRequest) {
			r.CoffeeWeight, r.WaterWeight, r.WaterTemperature, r.BrewTime, r.Rating = nil, nil, nil, nil, nil
		}},
		{name: "several problems", modify: func(r *CreateBrewLogRequest) {
			r.CoffeeID = -1
			r.Rating = ptr(9)
		}, fields: []string{"coffeeId", "rating"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := valid
			tt.modify(&req)
			errs := ValidateCreateBrewLog(req)

			if len(errs) != len(tt.fields) {
				t.Fatalf("ValidateCreateBrewLog() = %v, want %d errors", errs, len(tt.fields))
			}
			for i, field := range tt.fields {
				if errs[i].Field != field {
					t.Errorf("errs[%d].Field = %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestValidateBrewTimeParts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		minutes, seconds int
		total            int
		wantErr          bool
	}{
		{3, 30, 210, false},
		{0, 0, 0, false},
		{60, 0, 3600, false},
		{60, 1, 3601, true},
		{61, 0, 3660, true},
		{2, 60, 180, true},
		{-1, 0, -60, true},
	}

	for _, tt := range tests {
		total, errs := ValidateBrewTimeParts(tt.minutes, tt.seconds)
		if total != tt.total {
			t.Errorf("ValidateBrewTimeParts(%d, %d) total = %d, want %d", tt.minutes, tt.seconds, total, tt.total)
		}
		if (len(errs) > 0) != tt.wantErr {
			t.Errorf("ValidateBrewTimeParts(%d, %d) errs = %v, wantErr %v", tt.minutes, tt.seconds, errs, tt.wantErr)
		}
	}
}

func TestValidateBrewTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"3:05", 185, false},
		{"4", 240, false},
		{" 2:30 ", 150, false},
		{"60:00", 3600, false},
		{"60:01", 0, true},
		{"1:75", 0, true},
		{"61", 0, true},
		{"", 0, true},
		{"x:10", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, errs := ValidateBrewTime(tt.in)
			if (len(errs) > 0) != tt.wantErr {
				t.Fatalf("ValidateBrewTime(%q) errs = %v, wantErr %v", tt.in, errs, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ValidateBrewTime(%q) = %d, want %d", tt.in, got, tt.want)
			}
			for _, e := range errs {
				if e.Field != "brewTime" {
					t.Errorf("field = %q, want brewTime", e.Field)
				}
			}
		})
	}
}

func TestValidateCreateCoffee(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     CreateCoffeeRequest
		wantErr string
	}{
		{name: "name only", req: CreateCoffeeRequest{Name: "Ethiopia Guji"}},
		{name: "empty name", req: CreateCoffeeRequest{Name: "   "}, wantErr: "name"},
		{name: "long name", req: CreateCoffeeRequest{Name: strings.Repeat("a", 256)}, wantErr: "name"},
		{name: "long origin", req: CreateCoffeeRequest{Name: "x", Origin: strings.Repeat("o", 101)}, wantErr: "origin"},
		{name: "origin at limit", req: CreateCoffeeRequest{Name: "x", Origin: strings.Repeat("o", 100)}},
		{name: "long roaster", req: CreateCoffeeRequest{Name: "x", Roaster: strings.Repeat("r", 256)}, wantErr: "roaster"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			errs := ValidateCreateCoffee(tt.req)
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Errorf("ValidateCreateCoffee() = %v, want no errors", errs)
				}
				return
			}
			if len(errs) != 1 || errs[0].Field != tt.wantErr {
				t.Errorf("ValidateCreateCoffee() = %v, want one %q error", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateUpdateCoffee_RequiresAField(t *testing.T) {
	t.Parallel()

	if errs := ValidateUpdateCoffee(UpdateCoffeeRequest{}); len(errs) != 1 {
		t.Errorf("ValidateUpdateCoffee(empty) = %v, want one error", errs)
	}
	if errs := ValidateUpdateCoffee(UpdateCoffeeRequest{Origin: ptr("Kenya")}); len(errs) != 0 {
		t.Errorf("ValidateUpdateCoffee(origin) = %v, want none", errs)
	}
	if errs := ValidateUpdateCoffee(UpdateCoffeeRequest{Name: ptr("")}); len(errs) != 1 {
		t.Errorf("ValidateUpdateCoffee(blank name) = %v, want one error", errs)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		problems int
	}{
		{"Secret123", 0},
		{"Sh0rt", 1},
		{"alllowercase1", 1},
		{"ALLUPPERCASE1", 1},
		{"NoDigitsHere", 1},
		{"", 4},
	}

	for _, tt := range tests {
		if errs := ValidatePassword(tt.password); len(errs) != tt.problems {
			t.Errorf("ValidatePassword(%q) = %v, want %d problems", tt.password, errs, tt.problems)
		}
	}
}

func TestValidUsernameAndEmail(t *testing.T) {
	t.Parallel()

	usernames := map[string]bool{
		"ab":             false,
		"abc":            true,
		"coffee_lover-1": true,
		"has space":      false,
		"émile":          false,
		strings.Repeat("a", 50): true,
		strings.Repeat("a", 51): false,
	}
	for u, want := range usernames {
		if got := ValidUsername(u); got != want {
			t.Errorf("ValidUsername(%q) = %v, want %v", u, got, want)
		}
	}

	emails := map[string]bool{
		"a@b.co":        true,
		"user@example":  false,
		"no-at.example": false,
		"sp ace@x.io":   false,
	}
	for e, want := range emails {
		if got := ValidEmail(e); got != want {
			t.Errorf("ValidEmail(%q) = %v, want %v", e, got, want)
		}
	}
}

func TestValidateProfileUpdate(t *testing.T) {
	t.Parallel()

	if errs := ValidateProfileUpdate(UpdateProfileRequest{}); len(errs) != 1 || errs[0].Field != "profile" {
		t.Errorf("ValidateProfileUpdate(empty) = %v, want profile error", errs)
	}
	if errs := ValidateProfileUpdate(UpdateProfileRequest{Email: ptr("bad")}); len(errs) != 1 || errs[0].Field != "email" {
		t.Errorf("ValidateProfileUpdate(bad email) = %v, want email error", errs)
	}
	if errs := ValidateProfileUpdate(UpdateProfileRequest{Username: ptr("barista")}); len(errs) != 0 {
		t.Errorf("ValidateProfileUpdate(username) = %v, want none", errs)
	}
}

func TestValidationErrors_Err(t *testing.T) {
	t.Parallel()

	var none ValidationErrors
	if none.Err() != nil {
		t.Error("empty ValidationErrors.Err() should be nil")
	}

	err := ValidateCreateCoffee(CreateCoffeeRequest{}).Err()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("errors.As(%v, ValidationErrors) = false", err)
	}
	if !strings.Contains(err.Error(), "name: is required") {
		t.Errorf("Error() = %q, want it to mention the name", err.Error())
	}
}

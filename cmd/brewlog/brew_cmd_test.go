package main

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/history"
)

// createBrewHandler answers POST /api/v1/brewlogs with the request echoed
// back under id and stores the decoded request in got.
func createBrewHandler(id int64, got *brew.CreateBrewLogRequest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, brew.BrewLog{
			ID:           id,
			CoffeeID:     got.CoffeeID,
			BrewMethod:   got.BrewMethod,
			CoffeeWeight: got.CoffeeWeight,
			WaterWeight:  got.WaterWeight,
			BrewTime:     got.BrewTime,
			Rating:       got.Rating,
		})
	}
}

func TestBrewAdd_Flags(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	var got brew.CreateBrewLogRequest
	env.svc.handle("POST /api/v1/brewlogs", createBrewHandler(8, &got))

	res := runCLI(t, "", "brew", "add", "--coffee", "2", "-m", "french press", "--dose", "30", "--water", "500", "--time", "4:00", "--notes", "Cocoa")
	if res.err != nil {
		t.Fatalf("brew add failed: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Logged brew #8 (1:16.7)") {
		t.Errorf("stdout = %q", res.stdout)
	}
	if got.CoffeeID != 2 || got.BrewMethod != brew.MethodFrenchPress {
		t.Errorf("request = %+v", got)
	}
	if got.BrewTime == nil || *got.BrewTime != 240 {
		t.Errorf("BrewTime = %v, want 240", got.BrewTime)
	}
	if got.TastingNotes == nil || *got.TastingNotes != "Cocoa" {
		t.Errorf("TastingNotes = %v", got.TastingNotes)
	}
	if got.Rating != nil || got.GrindSize != nil {
		t.Errorf("flags not given should stay unset, got rating %v grind %v", got.Rating, got.GrindSize)
	}
}

func TestBrewAdd_Guide(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.svc.reply("GET /api/v1/coffees", http.StatusOK, brew.CoffeeListResponse{Coffees: testCoffees, Total: 2})

	var got brew.CreateBrewLogRequest
	env.svc.handle("POST /api/v1/brewlogs", createBrewHandler(9, &got))

	res := runCLI(t, "", "brew", "add", "--coffee", "guji", "--guide", "v60", "--rating", "4", "--temp", "91")
	if res.err != nil {
		t.Fatalf("brew add failed: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Logged brew #9 (1:16.7)") {
		t.Errorf("stdout = %q", res.stdout)
	}

	if got.CoffeeID != 1 || got.BrewMethod != brew.MethodV60 {
		t.Errorf("request = %+v", got)
	}
	if got.CoffeeWeight == nil || *got.CoffeeWeight != 15 || got.WaterWeight == nil || *got.WaterWeight != 250 {
		t.Errorf("weights = %v/%v, want the preset", got.CoffeeWeight, got.WaterWeight)
	}
	if got.GrindSize == nil || *got.GrindSize != "Medium-Fine" {
		t.Errorf("GrindSize = %v", got.GrindSize)
	}
	if got.WaterTemperature == nil || *got.WaterTemperature != 91 {
		t.Errorf("WaterTemperature = %v, flag should win over the preset", got.WaterTemperature)
	}
	if got.Rating == nil || *got.Rating != 4 {
		t.Errorf("Rating = %v, want 4", got.Rating)
	}

	h, err := history.Load(filepath.Join(env.home, history.File))
	if err != nil {
		t.Fatal(err)
	}
	if e, ok := h.MostRecent(history.KindBrewLog); !ok || e.ID != 9 {
		t.Errorf("history = %+v, want brew 9", h.Entries)
	}
}

func TestBrewAdd_ValidatesBeforeRequest(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "out of range",
			args: []string{"--coffee", "1", "-m", "V60", "--dose", "500", "--temp", "120"},
			want: []string{"coffeeWeight: must be between 0 and 200 g", "waterTemperature: must be between 0 and 100 °C"},
		},
		{
			name: "seconds out of range",
			args: []string{"--coffee", "1", "-m", "V60", "--time", "1:75"},
			want: []string{"brewTime: seconds must be between 0 and 59"},
		},
		{
			name: "rating",
			args: []string{"--coffee", "1", "-m", "V60", "--rating", "6"},
			want: []string{"rating: must be between 1 and 5"},
		},
		{
			name: "missing coffee and method",
			args: []string{"--dose", "15"},
			want: []string{"coffeeId:", "brewMethod: is required"},
		},
		{
			name: "unknown guide",
			args: []string{"--coffee", "1", "--guide", "siphon"},
			want: []string{`unknown guide "siphon"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, "", append([]string{"brew", "add"}, tt.args...)...)
			if res.err == nil {
				t.Fatal("expected an error")
			}
			for _, want := range tt.want {
				if !strings.Contains(res.err.Error(), want) {
					t.Errorf("error should contain %q:\n%v", want, res.err)
				}
			}
		})
	}
	if n := env.svc.count("POST /api/v1/brewlogs"); n != 0 {
		t.Errorf("create requests = %d, want 0", n)
	}
}

func TestBrewAdd_InteractiveNeedsTerminal(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	res := runCLI(t, "", "brew", "add", "-i")
	if res.err == nil || res.err.Error() != "-i needs a terminal" {
		t.Fatalf("err = %v", res.err)
	}
}

func TestBrewAdd_ForeignCoffee(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.svc.reply("POST /api/v1/brewlogs", http.StatusForbidden, map[string]string{"message": "forbidden"})

	res := runCLI(t, "", "brew", "add", "--coffee", "5", "-m", "V60")
	if res.err == nil || res.err.Error() != "You can only log brews of your own coffees." {
		t.Fatalf("err = %v", res.err)
	}
}

func TestBrewEdit(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.svc.handle("PUT /api/v1/brewlogs/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, brew.BrewLog{ID: 3})
	})
	env.svc.reply("PUT /api/v1/brewlogs/4", http.StatusForbidden, map[string]string{"message": "forbidden"})

	res := runCLI(t, "", "brew", "edit", "3")
	if res.err == nil || !strings.Contains(res.err.Error(), "nothing to update") {
		t.Fatalf("err = %v", res.err)
	}

	res = runCLI(t, "", "brew", "edit", "3", "--rating", "5", "--notes", "Peach")
	if res.err != nil {
		t.Fatalf("brew edit failed: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Updated brew #3") {
		t.Errorf("stdout = %q", res.stdout)
	}
	var body map[string]any
	if err := json.Unmarshal(env.svc.body("PUT /api/v1/brewlogs/3"), &body); err != nil {
		t.Fatal(err)
	}
	if len(body) != 2 || body["rating"] != float64(5) || body["tastingNotes"] != "Peach" {
		t.Errorf("body = %v, want only rating and notes", body)
	}

	res = runCLI(t, "", "brew", "edit", "4", "--rating", "2")
	if res.err == nil || res.err.Error() != "You can only update your own brew logs." {
		t.Fatalf("err = %v", res.err)
	}
}

func TestBrewShow_LastViewed(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.svc.reply("GET /api/v1/brewlogs/21", http.StatusOK, brew.BrewLog{
		ID:           21,
		CoffeeID:     1,
		BrewMethod:   brew.MethodV60,
		CoffeeWeight: ptr(15.0),
		WaterWeight:  ptr(250.0),
		Coffee:       &testCoffees[0],
	})

	res := runCLI(t, "", "brew", "show")
	if res.err == nil || !strings.Contains(res.err.Error(), "no brew log viewed yet") {
		t.Fatalf("err = %v", res.err)
	}

	res = runCLI(t, "", "brew", "show", "21")
	if res.err != nil {
		t.Fatalf("brew show failed: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Brew #21") || !strings.Contains(res.stdout, "Ethiopia Guji") {
		t.Errorf("stdout = %q", res.stdout)
	}

	res = runCLI(t, "", "brew", "show")
	if res.err != nil {
		t.Fatalf("brew show without id failed: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Brew #21") {
		t.Errorf("stdout = %q", res.stdout)
	}
	if n := env.svc.count("GET /api/v1/brewlogs/21"); n < 1 {
		t.Errorf("brew log requests = %d", n)
	}
}

func TestBrewShow_NotFoundForgetsHistory(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.svc.reply("GET /api/v1/brewlogs/5", http.StatusNotFound, map[string]string{"message": "not found"})

	histPath := filepath.Join(env.home, history.File)
	if err := history.RecordAccess(histPath, history.KindBrewLog, 5, "#5"); err != nil {
		t.Fatal(err)
	}

	res := runCLI(t, "", "brew", "show")
	if res.err == nil || res.err.Error() != "Brew log not found" {
		t.Fatalf("err = %v, want Brew log not found", res.err)
	}
	h, err := history.Load(histPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := h.MostRecent(history.KindBrewLog); ok {
		t.Error("a missing brew log should be forgotten")
	}
}

func TestBrewList(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.svc.reply("GET /api/v1/coffees", http.StatusOK, brew.CoffeeListResponse{Coffees: testCoffees, Total: 2})

	var query string
	env.svc.handle("GET /api/v1/brewlogs", func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		writeJSON(w, http.StatusOK, brew.BrewLogListResponse{
			BrewLogs: []brew.BrewLog{{ID: 3, CoffeeID: 1, BrewMethod: brew.MethodV60, Rating: ptr(5)}},
			Total:    4,
		})
	})

	res := runCLI(t, "", "brew", "list", "--coffee", "guji", "-m", "v60")
	if res.err != nil {
		t.Fatalf("brew list failed: %v", res.err)
	}
	if query != "brewMethod=V60&coffeeId=1" {
		t.Errorf("query = %q", query)
	}
	if !strings.Contains(res.stdout, "Ethiopia Guji") {
		t.Errorf("stdout should name the coffee:\n%s", res.stdout)
	}
	if !strings.Contains(res.stderr, "Showing 1 of 4 brews") {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestBrewList_User(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.svc.reply("GET /api/v1/users/9/brewlogs", http.StatusOK, brew.BrewLogListResponse{})

	res := runCLI(t, "", "brew", "list", "--user", "9")
	if res.err != nil {
		t.Fatalf("brew list failed: %v", res.err)
	}
	if !strings.Contains(res.stdout, "No brews found.") {
		t.Errorf("stdout = %q", res.stdout)
	}
	if n := env.svc.count("GET /api/v1/brewlogs"); n != 0 {
		t.Errorf("own brew log requests = %d, want 0", n)
	}
}

func TestBrewRm(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.svc.handle("DELETE /api/v1/brewlogs/6", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	res := runCLI(t, "", "brew", "rm", "6")
	if res.err == nil {
		t.Fatal("rm without --yes should refuse in a non-interactive session")
	}

	res = runCLI(t, "", "brew", "rm", "6", "-y")
	if res.err != nil {
		t.Fatalf("brew rm failed: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Deleted brew #6") {
		t.Errorf("stdout = %q", res.stdout)
	}
	if n := env.svc.count("DELETE /api/v1/brewlogs/6"); n != 1 {
		t.Errorf("delete requests = %d, want 1", n)
	}
}

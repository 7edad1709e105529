package brew

// User is an account on the brew log service.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// DisplayName returns the username, falling back to the email address.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// AuthResult is returned by a successful login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/v1/users.
type RegisterRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the body of PUT /api/v1/users/me.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// Coffee is a coffee in the user's collection.
type Coffee struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Origin      string `json:"origin,omitempty"`
	Roaster     string `json:"roaster,omitempty"`
	Description string `json:"description,omitempty"`
	PhotoPath   string `json:"photoPath,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// CreateCoffeeRequest is the body of POST /api/v1/coffees.
type CreateCoffeeRequest struct {
	Name        string `json:"name"`
	Origin      string `json:"origin,omitempty"`
	Roaster     string `json:"roaster,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateCoffeeRequest is the body of PUT /api/v1/coffees/{id}.
type UpdateCoffeeRequest struct {
	Name        *string `json:"name,omitempty"`
	Origin      *string `json:"origin,omitempty"`
	Roaster     *string `json:"roaster,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CoffeeFilters narrows GET /api/v1/coffees.
type CoffeeFilters struct {
	Search  string
	Origin  string
	Roaster string
	Limit   int
	Offset  int
}

// CoffeeListResponse is a page of coffees.
type CoffeeListResponse struct {
	Coffees []Coffee `json:"coffees"`
	Total   int      `json:"total"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
}

// BrewLog is a single logged brew. Optional measurements are pointers so
// that "not recorded" and zero stay distinguishable.
type BrewLog struct {
	ID               int64    `json:"id"`
	UserID           int64    `json:"userId"`
	CoffeeID         int64    `json:"coffeeId"`
	BrewMethod       string   `json:"brewMethod"`
	CoffeeWeight     *float64 `json:"coffeeWeight,omitempty"`
	WaterWeight      *float64 `json:"waterWeight,omitempty"`
	GrindSize        *string  `json:"grindSize,omitempty"`
	WaterTemperature *float64 `json:"waterTemperature,omitempty"`
	BrewTime         *int     `json:"brewTime,omitempty"` // seconds
	TastingNotes     *string  `json:"tastingNotes,omitempty"`
	Rating           *int     `json:"rating,omitempty"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	Coffee           *Coffee  `json:"coffee,omitempty"`
}

// BrewParams holds the editable measurements of a brew log. It is shared
// by create and update requests and by guide presets.
type BrewParams struct {
	BrewMethod       string   `json:"brewMethod,omitempty"`
	CoffeeWeight     *float64 `json:"coffeeWeight,omitempty"`
	WaterWeight      *float64 `json:"waterWeight,omitempty"`
	GrindSize        *string  `json:"grindSize,omitempty"`
	WaterTemperature *float64 `json:"waterTemperature,omitempty"`
	BrewTime         *int     `json:"brewTime,omitempty"`
	TastingNotes     *string  `json:"tastingNotes,omitempty"`
	Rating           *int     `json:"rating,omitempty"`
}

// Params extracts the editable measurements of a brew log.
func (b *BrewLog) Params() BrewParams {
	return BrewParams{
		BrewMethod:       b.BrewMethod,
		CoffeeWeight:     b.CoffeeWeight,
		WaterWeight:      b.WaterWeight,
		GrindSize:        b.GrindSize,
		WaterTemperature: b.WaterTemperature,
		BrewTime:         b.BrewTime,
		TastingNotes:     b.TastingNotes,
		Rating:           b.Rating,
	}
}

// CreateBrewLogRequest is the body of POST /api/v1/brewlogs.
type CreateBrewLogRequest struct {
	CoffeeID int64 `json:"coffeeId"`
	BrewParams
}

// UpdateBrewLogRequest is the body of PUT /api/v1/brewlogs/{id}.
type UpdateBrewLogRequest struct {
	BrewParams
}

// BrewLogFilters narrows GET /api/v1/brewlogs.
type BrewLogFilters struct {
	CoffeeID   int64
	UserID     int64
	BrewMethod string
	Rating     int
	Limit      int
	Offset     int
}

// BrewLogListResponse is a page of brew logs.
type BrewLogListResponse struct {
	BrewLogs []BrewLog `json:"brewLogs"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// AIOption is one selectable answer to an AI question.
type AIOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AIQuestion is the next question of the tasting assistant.
type AIQuestion struct {
	QuestionID string     `json:"questionId"`
	Text       string     `json:"text"`
	Options    []AIOption `json:"options"`
	Hint       string     `json:"hint,omitempty"`
}

// OptionLabel returns the label of the option with the given value, or the
// value itself if the question has no such option.
func (q AIQuestion) OptionLabel(value string) string {
	for _, o := range q.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// AIAnswer answers a single AI question.
type AIAnswer struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// AIContext gives the AI service context about the brew.
type AIContext struct {
	BrewMethod string `json:"brewMethod,omitempty"`
}

// AIQuestionRequest asks for the next tasting question.
type AIQuestionRequest struct {
	Answers []AIAnswer `json:"answers"`
	Context *AIContext `json:"context,omitempty"`
}

// RecommendationBrew describes the brew a recommendation is asked for.
type RecommendationBrew struct {
	CoffeeID int64 `json:"coffeeId,omitempty"`
	BrewParams
}

// BrewRecommendationRequest asks how to change the next brew.
type BrewRecommendationRequest struct {
	BrewLog RecommendationBrew `json:"brewLog"`
	Goal    string             `json:"goal"`
}

// BrewChange is a single suggested change to a brew variable.
type BrewChange struct {
	Variable string `json:"variable"`
	Delta    string `json:"delta"`
}

// BrewRecommendationResponse is the AI's suggestion for the next brew.
type BrewRecommendationResponse struct {
	Change      BrewChange `json:"change"`
	Explanation string     `json:"explanation"`
}

// RecommendationGoals are the suggested goals offered to the user.
var RecommendationGoals = []string{"more sweetness", "less bitterness", "more strength"}

// ExtractCoffeeRequest asks the AI to extract coffee details from free text
// such as a bag label.
type ExtractCoffeeRequest struct {
	Text string `json:"text"`
}

// HealthStatus is returned by GET /health.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

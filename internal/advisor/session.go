package advisor

// Assessment is the result of submitting one measurement.
type Assessment struct {
	Measurement Measurement `json:"measurement"`
	BMI         float64     `json:"bmi"`
	Category    Category    `json:"category"`
	Plan        MealPlan    `json:"meal_plan"`
	Greeting    string      `json:"greeting"`
}

// Session holds the most recently assessed category. Chat is locked until
// the first Assess. A Session is not safe for concurrent use.
type Session struct {
	category Category
}

// NewSession returns a session with chat locked.
func NewSession() *Session {
	return &Session{}
}

// ResumeSession restores a session from a previously stored category.
func ResumeSession(c Category) *Session {
	return &Session{category: c}
}

// Category returns the last assessed category, or CategoryNone.
func (s *Session) Category() Category {
	return s.category
}

// ChatEnabled reports whether a measurement has been assessed.
func (s *Session) ChatEnabled() bool {
	return s.category != CategoryNone
}

// Assess computes and classifies the BMI for m and records the category.
// m must already be valid.
func (s *Session) Assess(m Measurement) Assessment {
	bmi := m.BMI()
	s.category = Classify(bmi)
	return Assessment{
		Measurement: m,
		BMI:         bmi,
		Category:    s.category,
		Plan:        SuggestMeals(s.category),
		Greeting:    Greeting(s.category),
	}
}

// Ask answers a query in the context of the session's category.
func (s *Session) Ask(query string) (Reply, bool) {
	return AnswerQuery(query, s.category)
}

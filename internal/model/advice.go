// Package model defines the persisted advisory records.
package model

import (
	"time"

	"github.com/rcliao/fitfizz/internal/advisor"
)

// Session is a named advisory session and its last assessed category.
type Session struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Category     advisor.Category `json:"category"`
	BMI          float64          `json:"bmi,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    *time.Time       `json:"deleted_at,omitempty"`
	Measurements int              `json:"measurements"`
	Turns        int              `json:"turns"`
}

// Advisor restores the engine session for s.
func (s *Session) Advisor() *advisor.Session {
	return advisor.ResumeSession(s.Category)
}

// Measurement is one accepted weight/height submission.
type Measurement struct {
	ID        string           `json:"id"`
	SessionID string           `json:"session_id"`
	WeightKg  float64          `json:"weight_kg"`
	HeightM   float64          `json:"height_m"`
	BMI       float64          `json:"bmi"`
	Category  advisor.Category `json:"category"`
	CreatedAt time.Time        `json:"created_at"`
}

// ChatTurn is one answered chat query.
type ChatTurn struct {
	ID        string           `json:"id"`
	SessionID string           `json:"session_id"`
	Query     string           `json:"query"`
	Reply     string           `json:"reply"`
	Rule      advisor.Rule     `json:"rule"`
	Category  advisor.Category `json:"category"`
	CreatedAt time.Time        `json:"created_at"`
}

// SessionExport bundles a session with its full history.
type SessionExport struct {
	Session      Session       `json:"session"`
	Measurements []Measurement `json:"measurements"`
	Turns        []ChatTurn    `json:"turns"`
}

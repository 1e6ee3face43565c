// Package advice runs the assess and chat flows against a store. Both the
// CLI and the HTTP API go through it.
package advice

import (
	"context"
	"errors"
	"strings"

	"github.com/rcliao/fitfizz/internal/advisor"
	"github.com/rcliao/fitfizz/internal/model"
	"github.com/rcliao/fitfizz/internal/observability"
	"github.com/rcliao/fitfizz/internal/store"
)

// ErrChatLocked is returned by Ask when the session has no assessment yet.
var ErrChatLocked = errors.New("chat is disabled: run assess first")

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// AssessOutput is the result of a recorded assessment.
type AssessOutput struct {
	Session     string
	Assessment  advisor.Assessment
	Measurement *model.Measurement
}

// Assess classifies m and records it as the session's current state. m must
// have passed Measurement.Validate.
func (s *Service) Assess(ctx context.Context, name string, m advisor.Measurement) (*AssessOutput, error) {
	log := observability.WithFields("session", name)

	adv, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	if adv == nil {
		adv = advisor.NewSession()
	}

	a := adv.Assess(m)
	rec, err := s.store.RecordAssessment(ctx, store.AssessmentParams{Session: name, Assessment: a})
	if err != nil {
		log.Error("record assessment failed", "error", err)
		return nil, err
	}
	log.Info("assessed", "bmi", a.BMI, "category", a.Category.Key())

	return &AssessOutput{Session: name, Assessment: a, Measurement: rec}, nil
}

// Ask answers query in the context of the session. It returns a nil turn
// for a blank query and ErrChatLocked before the first assessment.
func (s *Service) Ask(ctx context.Context, name, query string) (*model.ChatTurn, error) {
	adv, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	if adv == nil || !adv.ChatEnabled() {
		return nil, ErrChatLocked
	}

	reply, ok := adv.Ask(query)
	if !ok {
		return nil, nil
	}
	turn, err := s.store.RecordTurn(ctx, store.TurnParams{
		Session:  name,
		Query:    strings.TrimSpace(query),
		Reply:    reply,
		Category: adv.Category(),
	})
	if err != nil {
		return nil, err
	}
	observability.WithFields("session", name).Info("chat turn", "rule", reply.Rule)
	return turn, nil
}

// CheckChat returns ErrChatLocked unless the session has been assessed.
func (s *Service) CheckChat(ctx context.Context, name string) error {
	adv, err := s.load(ctx, name)
	if err != nil {
		return err
	}
	if adv == nil || !adv.ChatEnabled() {
		return ErrChatLocked
	}
	return nil
}

// load returns the engine session for name, or nil if none exists.
func (s *Service) load(ctx context.Context, name string) (*advisor.Session, error) {
	sess, err := s.store.GetSession(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sess.Advisor(), nil
}

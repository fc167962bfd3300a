package model

import (
	"errors"
	"time"
)

// ConsentScope identifies the purpose a user grants or withdraws consent for.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type ConsentScope string

const (
	// ConsentScopeTraining covers use of uploaded assets for model training.
	ConsentScopeTraining ConsentScope = "training"
	// ConsentScopeMarketing covers marketing communications.
	ConsentScopeMarketing ConsentScope = "marketing"
	// ConsentScopeAnalytics covers product analytics collection.
	ConsentScopeAnalytics ConsentScope = "analytics"
)

// Valid returns true if the ConsentScope is a known scope.
func (s ConsentScope) Valid() bool {
	return s == ConsentScopeTraining || s == ConsentScopeMarketing || s == ConsentScopeAnalytics
}

// ConsentRecord is one immutable consent decision captured for audit purposes.
// Decisions are never updated; a changed mind produces a new record.
type ConsentRecord struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	Scope      ConsentScope `json:"scope"`
	Granted    bool         `json:"granted"`
	Source     string       `json:"source,omitempty"`
	RecordedAt time.Time    `json:"recorded_at"`
}

// ConsentDecisionRequest represents a request to record a consent decision.
type ConsentDecisionRequest struct {
	Scope   ConsentScope `json:"scope"`
	Granted bool         `json:"granted"`
	// Source records where the decision was taken (e.g. "settings", "signup").
	Source string `json:"source,omitempty"`
}

// Validate validates the ConsentDecisionRequest fields.
func (r *ConsentDecisionRequest) Validate() error {
	if !r.Scope.Valid() {
		return errors.New("invalid consent scope")
	}
	return nil
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Relationship groups a respondent can pick. Stored as-is on the response.
type Relationship string

const (
	RelationshipManager     Relationship = "manager"
	RelationshipPeer        Relationship = "peer"
	RelationshipSubordinate Relationship = "subordinate"
	RelationshipFriend      Relationship = "friend"
	RelationshipOther       Relationship = "other"
)

// ValidRelationship reports whether r is one of the known groups.
func ValidRelationship(r Relationship) bool {
	switch r {
	case RelationshipManager, RelationshipPeer, RelationshipSubordinate, RelationshipFriend, RelationshipOther:
		return true
	}
	return false
}

// FeedbackResponse is one anonymous survey answer. Immutable once created;
// SurveyId references the user the feedback is about.
type FeedbackResponse struct {
	Id           uuid.UUID
	SurveyId     uuid.UUID
	Relationship Relationship
	QChange      string // "what should change"
	QActions     string // "what actions would help"
	CreatedAt    time.Time
}

// AnalysisResult is derived from the responses on demand and never persisted.
type AnalysisResult struct {
	Summary  string
	Themes   []string
	PerGroup map[string]string
	Advice   string
}

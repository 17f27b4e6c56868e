package models

import (
	"time"

	"github.com/google/uuid"
)

// Breakdown categories used by the score evaluator agent.
const (
	CategoryTechnicalSkill = "technical skill"
	CategoryProblemSolving = "problem solving"
	CategoryCommunication  = "communication"
	CategoryKnowledge      = "knowledge"
)

type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Response struct {
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
}

type Feedback struct {
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
}

// Evaluation is the normalized output of the score evaluator agent. When the
// agent output could not be parsed, Error is set and the remaining fields are
// zero values; callers must check Error before trusting Score.
type Evaluation struct {
	Score            float64            `json:"score"`
	Breakdown        map[string]float64 `json:"breakdown"`
	Strengths        []string           `json:"strengths"`
	ImprovementAreas []string           `json:"improvement_areas"`
	Error            string             `json:"error,omitempty"`
}

// DefaultBreakdown returns the four fixed categories with zero scores.
func DefaultBreakdown() map[string]float64 {
	return map[string]float64{
		CategoryTechnicalSkill: 0,
		CategoryProblemSolving: 0,
		CategoryCommunication:  0,
		CategoryKnowledge:      0,
	}
}

type Interview struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"-"`
	UserID      string     `gorm:"type:text;not null;index" json:"user_id"`
	SessionID   string     `gorm:"type:text;not null;uniqueIndex" json:"session_id"`
	Questions   []Question `gorm:"serializer:json" json:"questions"`
	Responses   []Response `gorm:"serializer:json" json:"responses"`
	Feedback    []Feedback `gorm:"serializer:json" json:"feedback"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	Score       float64    `json:"score"`
	Evaluation  Evaluation `gorm:"serializer:json" json:"evaluation"`
	Timestamp   time.Time  `gorm:"type:timestamp;default:now()" json:"timestamp"`
	LastUpdated time.Time  `gorm:"type:timestamp;default:now()" json:"last_updated"`
}

func (Interview) TableName() string {
	return "mock_interviews"
}

// SessionData is the live interview state mirrored by the session store while
// an interview is in flight. It carries the same fields as the durable record
// minus the identifying metadata, which lives on the session row itself.
type SessionData struct {
	Questions  []Question `json:"questions"`
	Responses  []Response `json:"responses"`
	Feedback   []Feedback `json:"feedback"`
	Completed  bool       `json:"completed"`
	Score      float64    `json:"score"`
	Evaluation Evaluation `json:"evaluation"`
}

type Session struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"-"`
	UserID      string      `gorm:"type:text;not null;uniqueIndex:idx_sessions_user_session" json:"user_id"`
	SessionID   string      `gorm:"type:text;not null;uniqueIndex:idx_sessions_user_session" json:"session_id"`
	Expiry      time.Time   `gorm:"type:timestamp;index" json:"-"`
	LastUpdated time.Time   `gorm:"type:timestamp" json:"last_updated"`
	Data        SessionData `gorm:"serializer:json" json:"data"`
}

func (Session) TableName() string {
	return "sessions"
}

package models

type UploadResumeResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type QuestionsResponse struct {
	Questions []Question `json:"questions"`
}

// AnswerSubmission mirrors the shape the frontend sends per answered question.
type AnswerSubmission struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type ProcessResponsesRequest struct {
	Responses []AnswerSubmission `json:"responses"`
}

type ProcessResponsesResponse struct {
	Status     string     `json:"status"`
	Feedback   []Feedback `json:"feedback"`
	Score      float64    `json:"score"`
	Evaluation Evaluation `json:"evaluation"`
}

type UserStats struct {
	AverageScore     float64 `json:"average_score"`
	TotalTimeMinutes float64 `json:"total_time_minutes"`
	TotalInterviews  int     `json:"total_interviews"`
}

type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

type PerformanceBreakdown struct {
	EvaluationScores []CategoryScore `json:"evaluation_scores"`
	TotalSessions    int             `json:"total_sessions"`
	AverageScore     float64         `json:"average_score"`
}

type MonthlyScore struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	AverageScore float64 `json:"average_score"`
	SessionCount int     `json:"session_count"`
}

type MonthlyScores struct {
	UserID        string         `json:"user_id"`
	TimePeriod    string         `json:"time_period"`
	Message       string         `json:"message,omitempty"`
	MonthlyScores []MonthlyScore `json:"monthly_scores"`
}

type TestScore struct {
	TestNumber int     `json:"test_number"`
	SessionID  string  `json:"session_id"`
	Score      float64 `json:"score"`
	Timestamp  *string `json:"timestamp"`
}

type TestScores struct {
	UserID     string      `json:"user_id"`
	TotalTests int         `json:"total_tests"`
	TestScores []TestScore `json:"test_scores"`
}

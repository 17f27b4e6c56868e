package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/models"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/repositories"
)

// AnalyticsService derives dashboard statistics from a user's stored
// interview records. Every method degrades to a documented zero/empty shape
// on internal errors so dashboards keep rendering; only the "user has no
// records at all" case surfaces as ErrInterviewNotFound.
type AnalyticsService interface {
	UserStats(userID string) models.UserStats
	PerformanceBreakdown(userID string) models.PerformanceBreakdown
	MonthlyScores(userID string, months int) (*models.MonthlyScores, error)
	TestScores(userID string, limit int) (*models.TestScores, error)
	InterviewHistory(userID string) ([]models.Interview, error)
}

type analyticsService struct {
	repo repositories.InterviewRepository
}

func NewAnalyticsService(repo repositories.InterviewRepository) AnalyticsService {
	return &analyticsService{repo: repo}
}

// UserStats implements AnalyticsService. Average score is taken over the
// evaluation score of every record; elapsed time sums positive
// (last_updated - timestamp) durations, skipping records with missing
// timestamps.
func (s *analyticsService) UserStats(userID string) models.UserStats {
	interviews, err := s.repo.ListByUser(userID)
	if err != nil {
		log.Printf("⚠️  Error retrieving user stats: %v\n", err)
		return models.UserStats{}
	}

	if len(interviews) == 0 {
		return models.UserStats{}
	}

	var totalScore float64
	var totalMinutes float64

	for _, interview := range interviews {
		totalScore += interview.Evaluation.Score

		if interview.Timestamp.IsZero() || interview.LastUpdated.IsZero() {
			continue
		}
		duration := interview.LastUpdated.Sub(interview.Timestamp).Minutes()
		if duration > 0 {
			totalMinutes += duration
		}
	}

	return models.UserStats{
		AverageScore:     round2(totalScore / float64(len(interviews))),
		TotalTimeMinutes: round2(totalMinutes),
		TotalInterviews:  len(interviews),
	}
}

// PerformanceBreakdown implements AnalyticsService.
func (s *analyticsService) PerformanceBreakdown(userID string) models.PerformanceBreakdown {
	interviews, err := s.repo.ListCompleted(userID, nil, nil)
	if err != nil {
		log.Printf("⚠️  Error retrieving performance evaluations: %v\n", err)
		return emptyPerformanceBreakdown()
	}

	if len(interviews) == 0 {
		return emptyPerformanceBreakdown()
	}

	var totalScore float64
	categoryTotals := models.DefaultBreakdown()

	for _, interview := range interviews {
		totalScore += interview.Evaluation.Score
		for category := range categoryTotals {
			categoryTotals[category] += interview.Evaluation.Breakdown[category]
		}
	}

	total := float64(len(interviews))
	return models.PerformanceBreakdown{
		EvaluationScores: []models.CategoryScore{
			{Category: "Technical Skill", Score: round2(categoryTotals[models.CategoryTechnicalSkill] / total)},
			{Category: "Problem Solving", Score: round2(categoryTotals[models.CategoryProblemSolving] / total)},
			{Category: "Communication", Score: round2(categoryTotals[models.CategoryCommunication] / total)},
			{Category: "Knowledge", Score: round2(categoryTotals[models.CategoryKnowledge] / total)},
		},
		TotalSessions: len(interviews),
		AverageScore:  round2(totalScore / total),
	}
}

// MonthlyScores implements AnalyticsService. The window always spans exactly
// `months` consecutive calendar months ending with the current one; months
// with no completed interviews are filled with zero entries. A user with no
// records at all is reported as not found; "records exist but none in the
// window" is an empty-scores message, not an error.
func (s *analyticsService) MonthlyScores(userID string, months int) (*models.MonthlyScores, error) {
	if months <= 0 {
		months = 6
	}

	count, err := s.repo.CountByUser(userID)
	if err != nil {
		log.Printf("⚠️  Error counting user documents: %v\n", err)
		return emptyMonthlyScores(userID, months), nil
	}
	if count == 0 {
		return nil, repositories.ErrInterviewNotFound
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	windowStart := monthStart.AddDate(0, -(months - 1), 0)

	interviews, err := s.repo.ListCompleted(userID, &windowStart, &now)
	if err != nil {
		log.Printf("⚠️  Error retrieving monthly scores: %v\n", err)
		return emptyMonthlyScores(userID, months), nil
	}

	if len(interviews) == 0 {
		result := emptyMonthlyScores(userID, months)
		result.Message = "No interviews found in this period"
		return result, nil
	}

	type bucket struct {
		total float64
		count int
	}
	buckets := make(map[string]*bucket)

	for _, interview := range interviews {
		if interview.Timestamp.IsZero() {
			continue
		}

		// Root score 0 falls back to the evaluation score; the two are
		// written together so they only diverge on legacy records.
		score := interview.Score
		if score == 0 {
			score = interview.Evaluation.Score
		}

		key := interview.Timestamp.UTC().Format("2006-01")
		if b, ok := buckets[key]; ok {
			b.total += score
			b.count++
		} else {
			buckets[key] = &bucket{total: score, count: 1}
		}
	}

	monthlyScores := make([]models.MonthlyScore, 0, months)
	for i := months - 1; i >= 0; i-- {
		target := monthStart.AddDate(0, -i, 0)
		entry := models.MonthlyScore{
			Year:  target.Year(),
			Month: int(target.Month()),
		}
		if b, ok := buckets[target.Format("2006-01")]; ok {
			entry.AverageScore = round2(b.total / float64(b.count))
			entry.SessionCount = b.count
		}
		monthlyScores = append(monthlyScores, entry)
	}

	return &models.MonthlyScores{
		UserID:        userID,
		TimePeriod:    fmt.Sprintf("Last %d months", months),
		MonthlyScores: monthlyScores,
	}, nil
}

// TestScores implements AnalyticsService. Returns the `limit` most recent
// completed interviews, ordered oldest first and numbered from 1.
func (s *analyticsService) TestScores(userID string, limit int) (*models.TestScores, error) {
	if limit <= 0 {
		limit = 10
	}

	count, err := s.repo.CountByUser(userID)
	if err != nil {
		log.Printf("⚠️  Error counting user documents: %v\n", err)
		return &models.TestScores{UserID: userID, TestScores: []models.TestScore{}}, nil
	}
	if count == 0 {
		return nil, repositories.ErrInterviewNotFound
	}

	// Retrieval order is newest first
	interviews, err := s.repo.ListCompleted(userID, nil, nil)
	if err != nil {
		log.Printf("⚠️  Error retrieving test scores: %v\n", err)
		return &models.TestScores{UserID: userID, TestScores: []models.TestScore{}}, nil
	}

	if len(interviews) > limit {
		interviews = interviews[:limit]
	}

	testScores := make([]models.TestScore, 0, len(interviews))
	for i := len(interviews) - 1; i >= 0; i-- {
		interview := interviews[i]

		var timestamp *string
		if !interview.Timestamp.IsZero() {
			formatted := interview.Timestamp.Format(time.RFC3339)
			timestamp = &formatted
		}

		testScores = append(testScores, models.TestScore{
			TestNumber: len(interviews) - i,
			SessionID:  interview.SessionID,
			Score:      interview.Evaluation.Score,
			Timestamp:  timestamp,
		})
	}

	return &models.TestScores{
		UserID:     userID,
		TotalTests: len(testScores),
		TestScores: testScores,
	}, nil
}

// InterviewHistory implements AnalyticsService.
func (s *analyticsService) InterviewHistory(userID string) ([]models.Interview, error) {
	interviews, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(interviews) == 0 {
		return nil, repositories.ErrInterviewNotFound
	}
	return interviews, nil
}

func emptyPerformanceBreakdown() models.PerformanceBreakdown {
	return models.PerformanceBreakdown{
		EvaluationScores: []models.CategoryScore{
			{Category: "Technical Skill", Score: 0},
			{Category: "Problem Solving", Score: 0},
			{Category: "Communication", Score: 0},
			{Category: "Knowledge", Score: 0},
		},
	}
}

func emptyMonthlyScores(userID string, months int) *models.MonthlyScores {
	return &models.MonthlyScores{
		UserID:        userID,
		TimePeriod:    fmt.Sprintf("Last %d months", months),
		MonthlyScores: []models.MonthlyScore{},
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/models"
)

var ErrInterviewNotFound = errors.New("interview not found")

type InterviewRepository interface {
	Insert(interview *models.Interview) error
	Find(userID, sessionID string) (*models.Interview, error)
	Complete(userID, sessionID string, result *InterviewResult) error
	ListByUser(userID string) ([]models.Interview, error)
	ListCompleted(userID string, from, to *time.Time) ([]models.Interview, error)
	CountByUser(userID string) (int64, error)
}

// InterviewResult carries the fields written when responses are processed and
// the interview flips to completed.
type InterviewResult struct {
	Responses  []models.Response
	Feedback   []models.Feedback
	Score      float64
	Evaluation models.Evaluation
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Insert(interview *models.Interview) error {
	if err := r.db.Create(interview).Error; err != nil {
		return fmt.Errorf("failed to insert interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) Find(userID, sessionID string) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

func (r *interviewRepository) Complete(userID, sessionID string, data *InterviewResult) error {
	updates := models.Interview{
		Responses:   data.Responses,
		Feedback:    data.Feedback,
		Score:       data.Score,
		Evaluation:  data.Evaluation,
		Completed:   true,
		LastUpdated: time.Now(),
	}

	// Select forces zero values (a legitimate score of 0) to be written.
	result := r.db.Model(&models.Interview{}).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Select("responses", "feedback", "score", "evaluation", "completed", "last_updated").
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update interview: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		count, err := r.CountBySession(userID, sessionID)
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrInterviewNotFound
		}
	}

	return nil
}

func (r *interviewRepository) ListByUser(userID string) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&interviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}

func (r *interviewRepository) ListCompleted(userID string, from, to *time.Time) ([]models.Interview, error) {
	query := r.db.Where("user_id = ? AND completed = ?", userID, true)
	if from != nil {
		query = query.Where("timestamp >= ?", *from)
	}
	if to != nil {
		query = query.Where("timestamp <= ?", *to)
	}

	var interviews []models.Interview
	if err := query.Order("timestamp DESC").Find(&interviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list completed interviews: %w", err)
	}
	return interviews, nil
}

func (r *interviewRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Interview{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count interviews: %w", err)
	}
	return count, nil
}

func (r *interviewRepository) CountBySession(userID, sessionID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Interview{}).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count interviews: %w", err)
	}
	return count, nil
}

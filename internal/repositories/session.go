package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/models"
)

type SessionRepository interface {
	Find(userID, sessionID string) (*models.Session, error)
	FindAll(userID string) ([]models.Session, error)
	Upsert(session *models.Session) error
	Delete(userID, sessionID string) error
	DeleteAll(userID string) error
	DeleteExpired(now time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Find(userID, sessionID string) (*models.Session, error) {
	var session models.Session
	err := r.db.
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) FindAll(userID string) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.Where("user_id = ?", userID).Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to find sessions: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepository) Upsert(session *models.Session) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"expiry", "last_updated", "data",
		}),
	}).Create(session).Error
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Delete(userID, sessionID string) error {
	err := r.db.
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Delete(&models.Session{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteAll(userID string) error {
	err := r.db.
		Where("user_id = ?", userID).
		Delete(&models.Session{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.
		Where("expiry <= ?", now).
		Delete(&models.Session{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

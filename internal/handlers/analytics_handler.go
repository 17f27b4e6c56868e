package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/models"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/repositories"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/services"
)

type AnalyticsHandler struct {
	analytics services.AnalyticsService
}

func NewAnalyticsHandler(analytics services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// HandleUserStats handles GET /user_stats/:user_id.
func (h *AnalyticsHandler) HandleUserStats(c *fiber.Ctx) error {
	return c.JSON(h.analytics.UserStats(c.Params("user_id")))
}

// HandlePerformanceEvaluations handles GET /performance_evaluations/:user_id.
func (h *AnalyticsHandler) HandlePerformanceEvaluations(c *fiber.Ctx) error {
	return c.JSON(h.analytics.PerformanceBreakdown(c.Params("user_id")))
}

// HandleMonthlyScores handles GET /monthly_scores/:user_id?months=N.
func (h *AnalyticsHandler) HandleMonthlyScores(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	months := c.QueryInt("months", 6)

	result, err := h.analytics.MonthlyScores(userID, months)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Printf("⚠️  Failed to compute monthly scores: %v\n", err)
		return c.JSON(models.MonthlyScores{
			UserID:        userID,
			MonthlyScores: []models.MonthlyScore{},
		})
	}

	return c.JSON(result)
}

// HandleTestScores handles GET /test_scores/:user_id?limit=N.
func (h *AnalyticsHandler) HandleTestScores(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	limit := c.QueryInt("limit", 10)

	result, err := h.analytics.TestScores(userID, limit)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Printf("⚠️  Failed to retrieve test scores: %v\n", err)
		return c.JSON(models.TestScores{
			UserID:     userID,
			TestScores: []models.TestScore{},
		})
	}

	return c.JSON(result)
}

// HandleGetMockInterviews handles GET /get_mock_interview/:user_id, returning
// the user's full interview history.
func (h *AnalyticsHandler) HandleGetMockInterviews(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	interviews, err := h.analytics.InterviewHistory(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No interviews found for this user",
			})
		}
		log.Printf("⚠️  Failed to retrieve interview history: %v\n", err)
		return c.JSON(fiber.Map{
			"user_id":    userID,
			"interviews": []models.Interview{},
		})
	}

	return c.JSON(fiber.Map{
		"user_id":    userID,
		"interviews": interviews,
	})
}

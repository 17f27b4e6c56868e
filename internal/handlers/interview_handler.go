package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/models"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/repositories"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/services"
)

type InterviewHandler struct {
	interviewRepo repositories.InterviewRepository
	sessions      services.SessionStore
	processor     services.ResponseProcessor
	aggregator    services.EvaluationAggregator
}

func NewInterviewHandler(
	interviewRepo repositories.InterviewRepository,
	sessions services.SessionStore,
	processor services.ResponseProcessor,
	aggregator services.EvaluationAggregator,
) *InterviewHandler {
	return &InterviewHandler{
		interviewRepo: interviewRepo,
		sessions:      sessions,
		processor:     processor,
		aggregator:    aggregator,
	}
}

// HandleProcessResponses handles
// POST /process_interview_responses/:user_id/:session_id. It generates
// per-question feedback, aggregates the overall evaluation and marks the
// interview completed.
func (h *InterviewHandler) HandleProcessResponses(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	sessionID := c.Params("session_id")

	var req models.ProcessResponsesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	interview, err := h.interviewRepo.Find(userID, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview data not found",
			})
		}
		log.Printf("❌ Database query failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if len(req.Responses) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No responses provided",
		})
	}

	log.Printf("🔄 Processing %d responses for user %s, session %s\n",
		len(req.Responses), userID, sessionID)

	feedbackList, responses, validTriples := h.processor.Process(
		c.UserContext(), interview.Questions, req.Responses)

	if len(validTriples) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid responses available for evaluation",
		})
	}

	evaluation := h.aggregator.Aggregate(c.UserContext(), validTriples, userID, sessionID)
	score := evaluation.Score

	result := &repositories.InterviewResult{
		Responses:  responses,
		Feedback:   feedbackList,
		Score:      score,
		Evaluation: evaluation,
	}
	if err := h.interviewRepo.Complete(userID, sessionID, result); err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview data not found for update",
			})
		}
		log.Printf("❌ Database update failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save results",
		})
	}

	h.sessions.Update(userID, sessionID, func(data *models.SessionData) {
		data.Responses = responses
		data.Feedback = feedbackList
		data.Score = score
		data.Evaluation = evaluation
		data.Completed = true
	})

	log.Printf("✅ Interview processing completed for session %s\n", sessionID)
	return c.JSON(models.ProcessResponsesResponse{
		Status:     "completed",
		Feedback:   feedbackList,
		Score:      score,
		Evaluation: evaluation,
	})
}

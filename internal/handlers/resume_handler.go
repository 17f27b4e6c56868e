package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/models"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/repositories"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/services"
)

type ResumeHandler struct {
	interviewRepo   repositories.InterviewRepository
	sessions        services.SessionStore
	storageService  services.StorageService
	pdfParser       services.PDFParserService
	questionService services.QuestionService
	indexer         services.Indexer // optional, may be nil
	maxFileSize     int64
}

func NewResumeHandler(
	interviewRepo repositories.InterviewRepository,
	sessions services.SessionStore,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	questionService services.QuestionService,
	indexer services.Indexer,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		interviewRepo:   interviewRepo,
		sessions:        sessions,
		storageService:  storageService,
		pdfParser:       pdfParser,
		questionService: questionService,
		indexer:         indexer,
		maxFileSize:     maxFileSize,
	}
}

// HandleUploadResume handles POST /upload_resume. It extracts the resume
// text, generates interview questions and opens a new session.
func (h *ResumeHandler) HandleUploadResume(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume file uploaded",
		})
	}

	userID := c.FormValue("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF files are accepted",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveResume(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save resume file",
		})
	}

	resumeText, err := h.pdfParser.ExtractResumeText(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid PDF file",
		})
	}

	questions, err := h.questionService.Generate(c.UserContext(), resumeText)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyResume):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Resume text is required",
			})
		case errors.Is(err, services.ErrAgentFormat):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error parsing AI response",
			})
		default:
			log.Printf("❌ Question generation failed: %v\n", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to generate questions",
			})
		}
	}

	sessionID := uuid.New().String()

	h.sessions.Set(userID, sessionID, models.SessionData{
		Questions: questions,
		Responses: []models.Response{},
		Feedback:  []models.Feedback{},
		Completed: false,
	})

	now := time.Now()
	interview := &models.Interview{
		UserID:      userID,
		SessionID:   sessionID,
		Questions:   questions,
		Responses:   []models.Response{},
		Feedback:    []models.Feedback{},
		Completed:   false,
		Timestamp:   now,
		LastUpdated: now,
	}

	if err := h.interviewRepo.Insert(interview); err != nil {
		log.Printf("❌ Database insert failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save interview data",
		})
	}

	if h.indexer != nil {
		h.indexer.Enqueue(services.IndexJob{
			UserID:     userID,
			SessionID:  sessionID,
			ResumeText: resumeText,
		})
	}

	log.Printf("✅ Interview session %s created for user %s\n", sessionID, userID)
	return c.JSON(models.UploadResumeResponse{
		Message:   "Resume processed successfully",
		SessionID: sessionID,
	})
}

// HandleGetQuestions handles GET /question/:user_id/:session_id. The live
// session mirror is consulted first, then the durable record.
func (h *ResumeHandler) HandleGetQuestions(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	sessionID := c.Params("session_id")

	if data, ok := h.sessions.Get(userID, sessionID); ok {
		return c.JSON(models.QuestionsResponse{Questions: data.Questions})
	}

	interview, err := h.interviewRepo.Find(userID, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview session not found",
			})
		}
		log.Printf("❌ Database query failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	return c.JSON(models.QuestionsResponse{Questions: interview.Questions})
}

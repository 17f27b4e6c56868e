package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/models"
)

var (
	ErrEmptyResume = errors.New("resume text is required")
	ErrAgentFormat = errors.New("error parsing AI response")
)

// QuestionService turns resume text into a list of interview questions via
// the question generator agent.
type QuestionService interface {
	Generate(ctx context.Context, resumeText string) ([]models.Question, error)
}

type questionService struct {
	gemini     GeminiService
	retriever  QdrantService // optional, may be nil
	prompts    *PromptBuilder
	maxRetries int
}

func NewQuestionService(gemini GeminiService, retriever QdrantService, maxRetries int) QuestionService {
	return &questionService{
		gemini:     gemini,
		retriever:  retriever,
		prompts:    NewPromptBuilder(),
		maxRetries: maxRetries,
	}
}

// Generate implements QuestionService.
func (s *questionService) Generate(ctx context.Context, resumeText string) ([]models.Question, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrEmptyResume
	}

	promptContext := s.retrieveContext(ctx, resumeText)
	prompt := s.prompts.BuildQuestionGenerationPrompt(resumeText, promptContext)

	raw, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.5, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	var parsed []struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		log.Printf("❌ Failed to parse question list: %v\nRaw output: %s\n", err, raw)
		return nil, fmt.Errorf("%w: %v", ErrAgentFormat, err)
	}

	questions := make([]models.Question, 0, len(parsed))
	for _, item := range parsed {
		text := item.Question
		if text == "" {
			text = "No question generated"
		}
		questions = append(questions, models.Question{
			ID:   uuid.New().String(),
			Text: text,
		})
	}

	return questions, nil
}

// retrieveContext pulls similar rubric and resume chunks from the vector
// store. Strictly best-effort, any failure degrades to empty context.
func (s *questionService) retrieveContext(ctx context.Context, resumeText string) string {
	if s.retriever == nil {
		return ""
	}

	embedding, err := s.gemini.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		log.Printf("⚠️  Failed to embed resume for context retrieval: %v\n", err)
		return ""
	}

	var allResults []SearchResult
	for _, docType := range []string{DocTypeRubric, DocTypeResume} {
		results, err := s.retriever.SearchSimilar(ctx, embedding, docType, 3)
		if err != nil {
			log.Printf("⚠️  Failed to search %s context: %v\n", docType, err)
			continue
		}
		allResults = append(allResults, results...)
	}

	if len(allResults) == 0 {
		return ""
	}

	return FormatRetrievedContext(allResults)
}

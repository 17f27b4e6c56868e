package services

import (
	"context"
	"log"
	"strings"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/models"
)

// SentinelFeedback is stored in place of feedback when the response evaluator
// agent fails, so one bad call does not abort the whole batch.
const SentinelFeedback = "Could not generate feedback"

// ValidTriple is a question/response/feedback mapping with real (non-sentinel)
// feedback, usable for overall evaluation.
type ValidTriple struct {
	Question string `json:"question"`
	Response string `json:"response"`
	Feedback string `json:"feedback"`
}

// ResponseProcessor generates per-question feedback for submitted answers.
type ResponseProcessor interface {
	Process(ctx context.Context, questions []models.Question, answers []models.AnswerSubmission) ([]models.Feedback, []models.Response, []ValidTriple)
}

type responseProcessor struct {
	gemini     GeminiService
	prompts    *PromptBuilder
	maxRetries int
}

func NewResponseProcessor(gemini GeminiService, maxRetries int) ResponseProcessor {
	return &responseProcessor{
		gemini:     gemini,
		prompts:    NewPromptBuilder(),
		maxRetries: maxRetries,
	}
}

// Process implements ResponseProcessor. Answers with a missing question id or
// text, or referencing an unknown question, are skipped rather than stored
// dangling. Agent failures substitute SentinelFeedback.
func (p *responseProcessor) Process(ctx context.Context, questions []models.Question, answers []models.AnswerSubmission) ([]models.Feedback, []models.Response, []ValidTriple) {
	feedbackList := []models.Feedback{}
	responses := []models.Response{}
	validTriples := []ValidTriple{}

	for _, answer := range answers {
		if answer.QuestionID == "" || answer.Answer == "" {
			log.Printf("⚠️  Skipping response with missing questionId or answer\n")
			continue
		}

		question := findQuestion(questions, answer.QuestionID)
		if question == nil {
			log.Printf("⚠️  Question ID %s not found in stored questions\n", answer.QuestionID)
			continue
		}

		feedback := p.generateFeedback(ctx, question.Text, answer.Answer)

		responses = append(responses, models.Response{
			QuestionID: answer.QuestionID,
			Text:       answer.Answer,
		})

		feedbackList = append(feedbackList, models.Feedback{
			QuestionID: answer.QuestionID,
			Text:       feedback,
		})

		if !strings.Contains(feedback, SentinelFeedback) {
			validTriples = append(validTriples, ValidTriple{
				Question: question.Text,
				Response: answer.Answer,
				Feedback: feedback,
			})
		}
	}

	return feedbackList, responses, validTriples
}

func (p *responseProcessor) generateFeedback(ctx context.Context, questionText, answerText string) string {
	prompt := p.prompts.BuildFeedbackPrompt(questionText, answerText)

	feedback, err := p.gemini.GenerateTextWithRetry(ctx, prompt, 0.5, p.maxRetries)
	if err != nil {
		log.Printf("❌ Feedback generation failed: %v\n", err)
		return SentinelFeedback
	}

	return strings.TrimSpace(feedback)
}

func findQuestion(questions []models.Question, id string) *models.Question {
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i]
		}
	}
	return nil
}

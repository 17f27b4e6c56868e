package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/models"
)

// EvaluationAggregator sends valid question/response/feedback triples to the
// score evaluator agent and normalizes its output. It never fails the request:
// unparseable output comes back as an Evaluation carrying an error marker and
// a score of 0.
type EvaluationAggregator interface {
	Aggregate(ctx context.Context, triples []ValidTriple, userID, sessionID string) models.Evaluation
}

type evaluationAggregator struct {
	gemini     GeminiService
	prompts    *PromptBuilder
	maxRetries int
}

func NewEvaluationAggregator(gemini GeminiService, maxRetries int) EvaluationAggregator {
	return &evaluationAggregator{
		gemini:     gemini,
		prompts:    NewPromptBuilder(),
		maxRetries: maxRetries,
	}
}

// Aggregate implements EvaluationAggregator.
func (a *evaluationAggregator) Aggregate(ctx context.Context, triples []ValidTriple, userID, sessionID string) models.Evaluation {
	payload, err := json.Marshal(map[string]interface{}{
		"pairs": triples,
		"metadata": map[string]string{
			"user_id":    userID,
			"session_id": sessionID,
		},
	})
	if err != nil {
		return errorEvaluation(fmt.Sprintf("Evaluation generation failed: %v", err))
	}

	prompt := a.prompts.BuildEvaluationPrompt(string(payload))

	raw, err := a.gemini.GenerateTextWithRetry(ctx, prompt, 0.3, a.maxRetries)
	if err != nil {
		log.Printf("❌ Scoring failed: %v\n", err)
		return errorEvaluation(fmt.Sprintf("Evaluation generation failed: %v", err))
	}

	var parsed struct {
		OverallScore     float64            `json:"overall_score"`
		ScoreBreakdown   map[string]float64 `json:"score_breakdown"`
		Strengths        []string           `json:"strengths"`
		ImprovementAreas []string           `json:"improvement_areas"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		log.Printf("❌ Failed to parse evaluation output: %v\nRaw output: %s\n", err, raw)
		return errorEvaluation(fmt.Sprintf("Invalid JSON format: %v", err))
	}

	// Default-fill optional fields the agent may omit
	breakdown := parsed.ScoreBreakdown
	if breakdown == nil {
		breakdown = models.DefaultBreakdown()
	}
	strengths := parsed.Strengths
	if strengths == nil {
		strengths = []string{}
	}
	improvementAreas := parsed.ImprovementAreas
	if improvementAreas == nil {
		improvementAreas = []string{}
	}

	return models.Evaluation{
		Score:            parsed.OverallScore,
		Breakdown:        breakdown,
		Strengths:        strengths,
		ImprovementAreas: improvementAreas,
	}
}

func errorEvaluation(message string) models.Evaluation {
	return models.Evaluation{Error: message}
}

// extractJSON pulls a JSON object or array out of agent output that might be
// wrapped in markdown fences or surrounding prose.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	switch {
	case startArr != -1 && endArr > startArr && (startObj == -1 || startArr < startObj):
		return text[startArr : endArr+1]
	case startObj != -1 && endObj > startObj:
		return text[startObj : endObj+1]
	}

	return strings.TrimSpace(text)
}

package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionGenerationPrompt creates the prompt for the question generator
// agent. Context holds optional rubric/resume chunks retrieved from the vector
// store and may be empty.
func (pb *PromptBuilder) BuildQuestionGenerationPrompt(resumeText, context string) string {
	return fmt.Sprintf(`You are an interview question generator specializing in crafting technical and behavioral interview questions.

CANDIDATE RESUME:
%s

RELEVANT CONTEXT (rubrics and similar profiles, may be empty):
%s

Generate a list of 5 interview questions tailored to the candidate's resume.
Mix technical questions about the candidate's stated skills with behavioral questions about their experience.

Return ONLY a JSON array in the following format, with no extra commentary:
[
  {"question": "<question text>"},
  {"question": "<question text>"}
]`, resumeText, context)
}

// BuildFeedbackPrompt creates the prompt for the response evaluator agent.
func (pb *PromptBuilder) BuildFeedbackPrompt(question, response string) string {
	return fmt.Sprintf(`You are a response evaluator. You evaluate interview answers based on relevance, clarity, and technical correctness.

QUESTION:
%s

CANDIDATE RESPONSE:
%s

Provide detailed feedback (3-5 sentences) on this response: what was answered well, what was missing, and how it could be improved.
Return ONLY the feedback text.`, question, response)
}

// BuildEvaluationPrompt creates the prompt for the final score evaluator
// agent. interviewData is the serialized question/response/feedback triples
// plus identifying metadata.
func (pb *PromptBuilder) BuildEvaluationPrompt(interviewData string) string {
	return fmt.Sprintf(`You are a final score evaluator. You assess overall interview performance in problem-solving, communication, and domain knowledge.

INTERVIEW DATA (question-response-feedback mappings with metadata):
%s

Evaluate the candidate's overall performance and assign a score out of 10.

Return your response in the following JSON format:
{
  "overall_score": <0-10>,
  "score_breakdown": {
    "technical skill": <0-10>,
    "problem solving": <0-10>,
    "communication": <0-10>,
    "knowledge": <0-10>
  },
  "strengths": ["<strength>", "..."],
  "improvement_areas": ["<area>", "..."]
}`, interviewData)
}

// FormatRetrievedContext flattens vector search results into a prompt section.
func FormatRetrievedContext(results []SearchResult) string {
	if len(results) == 0 {
		return "No relevant context found."
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}

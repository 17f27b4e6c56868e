package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/services"
)

func TestGenerateQuestions(t *testing.T) {
	gemini := &mockGemini{
		generate: func(prompt string) (string, error) {
			return "```json\n[" +
				`{"question":"Tell me about your Go experience."},` +
				`{"question":"How do you design a REST API?"},` +
				`{"question":"Describe a hard bug you fixed."},` +
				`{"question":"What is a goroutine?"},` +
				`{"question":"How do you handle failure in distributed systems?"}` +
				"]\n```", nil
		},
	}

	svc := services.NewQuestionService(gemini, nil, 3)
	questions, err := svc.Generate(context.Background(), "Experienced backend engineer, 5 years Python, AWS")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}

	seen := make(map[string]bool)
	for _, q := range questions {
		if q.ID == "" {
			t.Fatalf("question has empty id")
		}
		if q.Text == "" {
			t.Fatalf("question has empty text")
		}
		if seen[q.ID] {
			t.Fatalf("duplicate question id %s", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestGenerateQuestionsEmptyResume(t *testing.T) {
	svc := services.NewQuestionService(&mockGemini{}, nil, 3)

	_, err := svc.Generate(context.Background(), "   ")
	if !errors.Is(err, services.ErrEmptyResume) {
		t.Fatalf("expected ErrEmptyResume, got %v", err)
	}
}

func TestGenerateQuestionsInvalidJSON(t *testing.T) {
	gemini := &mockGemini{
		generate: func(prompt string) (string, error) {
			return "I could not come up with questions, sorry.", nil
		},
	}

	svc := services.NewQuestionService(gemini, nil, 3)
	_, err := svc.Generate(context.Background(), "some resume")
	if !errors.Is(err, services.ErrAgentFormat) {
		t.Fatalf("expected ErrAgentFormat, got %v", err)
	}
}

func TestGenerateQuestionsObjectInsteadOfArray(t *testing.T) {
	gemini := &mockGemini{
		generate: func(prompt string) (string, error) {
			return `{"question":"only one"}`, nil
		},
	}

	svc := services.NewQuestionService(gemini, nil, 3)
	_, err := svc.Generate(context.Background(), "some resume")
	if !errors.Is(err, services.ErrAgentFormat) {
		t.Fatalf("expected ErrAgentFormat, got %v", err)
	}
}

func TestGenerateQuestionsMissingQuestionField(t *testing.T) {
	gemini := &mockGemini{
		generate: func(prompt string) (string, error) {
			return `[{"question":"real one"},{"note":"oops"}]`, nil
		},
	}

	svc := services.NewQuestionService(gemini, nil, 3)
	questions, err := svc.Generate(context.Background(), "some resume")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[1].Text != "No question generated" {
		t.Fatalf("expected placeholder text, got %q", questions[1].Text)
	}
}

func TestGenerateQuestionsAgentFailure(t *testing.T) {
	gemini := &mockGemini{
		generate: func(prompt string) (string, error) {
			return "", errors.New("upstream timeout")
		},
	}

	svc := services.NewQuestionService(gemini, nil, 3)
	_, err := svc.Generate(context.Background(), "some resume")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if errors.Is(err, services.ErrAgentFormat) || errors.Is(err, services.ErrEmptyResume) {
		t.Fatalf("agent failure should not map to a client error: %v", err)
	}
}

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/handlers"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/models"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/repositories"
)

func newAnalyticsApp(analytics *stubAnalytics) *fiber.App {
	app := fiber.New()
	handler := handlers.NewAnalyticsHandler(analytics)
	app.Get("/user_stats/:user_id", handler.HandleUserStats)
	app.Get("/performance_evaluations/:user_id", handler.HandlePerformanceEvaluations)
	app.Get("/monthly_scores/:user_id", handler.HandleMonthlyScores)
	app.Get("/test_scores/:user_id", handler.HandleTestScores)
	app.Get("/get_mock_interview/:user_id", handler.HandleGetMockInterviews)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestHandleUserStats(t *testing.T) {
	analytics := &stubAnalytics{
		userStats: func(userID string) models.UserStats {
			if userID != "u1" {
				t.Fatalf("unexpected user id %s", userID)
			}
			return models.UserStats{AverageScore: 7.2, TotalTimeMinutes: 90, TotalInterviews: 4}
		},
	}

	resp := getJSON(t, newAnalyticsApp(analytics), "/user_stats/u1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var stats models.UserStats
	decodeBody(t, resp, &stats)
	if stats.AverageScore != 7.2 || stats.TotalInterviews != 4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestHandlePerformanceEvaluations(t *testing.T) {
	analytics := &stubAnalytics{
		performance: func(userID string) models.PerformanceBreakdown {
			return models.PerformanceBreakdown{
				EvaluationScores: []models.CategoryScore{{Category: "Communication", Score: 6.5}},
				TotalSessions:    3,
				AverageScore:     6.8,
			}
		},
	}

	resp := getJSON(t, newAnalyticsApp(analytics), "/performance_evaluations/u1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var breakdown models.PerformanceBreakdown
	decodeBody(t, resp, &breakdown)
	if breakdown.TotalSessions != 3 || len(breakdown.EvaluationScores) != 1 {
		t.Fatalf("unexpected breakdown: %+v", breakdown)
	}
}

func TestHandleMonthlyScoresPassesQueryParam(t *testing.T) {
	var gotMonths int
	analytics := &stubAnalytics{
		monthlyScores: func(userID string, months int) (*models.MonthlyScores, error) {
			gotMonths = months
			return &models.MonthlyScores{UserID: userID, MonthlyScores: []models.MonthlyScore{}}, nil
		},
	}

	resp := getJSON(t, newAnalyticsApp(analytics), "/monthly_scores/u1?months=3")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if gotMonths != 3 {
		t.Fatalf("expected months=3, got %d", gotMonths)
	}
}

func TestHandleMonthlyScoresUnknownUser(t *testing.T) {
	analytics := &stubAnalytics{
		monthlyScores: func(userID string, months int) (*models.MonthlyScores, error) {
			return nil, repositories.ErrInterviewNotFound
		},
	}

	resp := getJSON(t, newAnalyticsApp(analytics), "/monthly_scores/ghost")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var body map[string]string
	decodeBody(t, resp, &body)
	if body["error"] != "User not found" {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestHandleMonthlyScoresDegradesOnInternalError(t *testing.T) {
	analytics := &stubAnalytics{
		monthlyScores: func(userID string, months int) (*models.MonthlyScores, error) {
			return nil, errDBDown
		},
	}

	resp := getJSON(t, newAnalyticsApp(analytics), "/monthly_scores/u1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on degraded path, got %d", resp.StatusCode)
	}

	var result models.MonthlyScores
	decodeBody(t, resp, &result)
	if result.UserID != "u1" || len(result.MonthlyScores) != 0 {
		t.Fatalf("unexpected degraded body: %+v", result)
	}
}

func TestHandleTestScoresUnknownUser(t *testing.T) {
	analytics := &stubAnalytics{
		testScores: func(userID string, limit int) (*models.TestScores, error) {
			return nil, repositories.ErrInterviewNotFound
		},
	}

	resp := getJSON(t, newAnalyticsApp(analytics), "/test_scores/ghost")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHandleTestScoresPassesLimit(t *testing.T) {
	var gotLimit int
	analytics := &stubAnalytics{
		testScores: func(userID string, limit int) (*models.TestScores, error) {
			gotLimit = limit
			return &models.TestScores{UserID: userID, TestScores: []models.TestScore{}}, nil
		},
	}

	resp := getJSON(t, newAnalyticsApp(analytics), "/test_scores/u1?limit=5")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if gotLimit != 5 {
		t.Fatalf("expected limit=5, got %d", gotLimit)
	}
}

func TestHandleGetMockInterviews(t *testing.T) {
	analytics := &stubAnalytics{
		history: func(userID string) ([]models.Interview, error) {
			return []models.Interview{{UserID: userID, SessionID: "s1"}}, nil
		},
	}

	resp := getJSON(t, newAnalyticsApp(analytics), "/get_mock_interview/u1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		UserID     string             `json:"user_id"`
		Interviews []models.Interview `json:"interviews"`
	}
	decodeBody(t, resp, &body)
	if body.UserID != "u1" || len(body.Interviews) != 1 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHandleGetMockInterviewsUnknownUser(t *testing.T) {
	analytics := &stubAnalytics{
		history: func(userID string) ([]models.Interview, error) {
			return nil, repositories.ErrInterviewNotFound
		},
	}

	resp := getJSON(t, newAnalyticsApp(analytics), "/get_mock_interview/ghost")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

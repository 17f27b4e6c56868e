package handlers_test

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/models"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/repositories"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/services"
)

var errDBDown = errors.New("database unreachable")

// stubInterviewRepo implements repositories.InterviewRepository with scripted
// responses for handler tests.
type stubInterviewRepo struct {
	interview    *models.Interview
	findErr      error
	insertErr    error
	completeErr  error
	inserted     *models.Interview
	completed    *repositories.InterviewResult
	completedKey string
}

func (s *stubInterviewRepo) Insert(interview *models.Interview) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = interview
	return nil
}

func (s *stubInterviewRepo) Find(userID, sessionID string) (*models.Interview, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.interview, nil
}

func (s *stubInterviewRepo) Complete(userID, sessionID string, result *repositories.InterviewResult) error {
	if s.completeErr != nil {
		return s.completeErr
	}
	s.completed = result
	s.completedKey = userID + "/" + sessionID
	return nil
}

func (s *stubInterviewRepo) ListByUser(userID string) ([]models.Interview, error) {
	return nil, nil
}

func (s *stubInterviewRepo) ListCompleted(userID string, from, to *time.Time) ([]models.Interview, error) {
	return nil, nil
}

func (s *stubInterviewRepo) CountByUser(userID string) (int64, error) {
	return 0, nil
}

// stubSessionStore records mutations without any backing storage.
type stubSessionStore struct {
	data       map[string]models.SessionData
	setCalls   int
	updateKeys []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{data: make(map[string]models.SessionData)}
}

func (s *stubSessionStore) Get(userID, sessionID string) (*models.SessionData, bool) {
	data, ok := s.data[userID+"/"+sessionID]
	if !ok {
		return nil, false
	}
	return &data, true
}

func (s *stubSessionStore) GetAll(userID string) map[string]models.SessionData {
	return nil
}

func (s *stubSessionStore) Set(userID, sessionID string, data models.SessionData) {
	s.setCalls++
	s.data[userID+"/"+sessionID] = data
}

func (s *stubSessionStore) Update(userID, sessionID string, apply func(*models.SessionData)) {
	key := userID + "/" + sessionID
	s.updateKeys = append(s.updateKeys, key)
	if data, ok := s.data[key]; ok {
		apply(&data)
		s.data[key] = data
	}
}

func (s *stubSessionStore) Delete(userID, sessionID string) { delete(s.data, userID+"/"+sessionID) }
func (s *stubSessionStore) DeleteUser(userID string)        {}
func (s *stubSessionStore) Start(ctx context.Context)       {}
func (s *stubSessionStore) Stop()                           {}

// stubProcessor implements services.ResponseProcessor via a function field.
type stubProcessor struct {
	process func(questions []models.Question, answers []models.AnswerSubmission) ([]models.Feedback, []models.Response, []services.ValidTriple)
}

func (s *stubProcessor) Process(ctx context.Context, questions []models.Question, answers []models.AnswerSubmission) ([]models.Feedback, []models.Response, []services.ValidTriple) {
	return s.process(questions, answers)
}

// stubAggregator implements services.EvaluationAggregator.
type stubAggregator struct {
	evaluation models.Evaluation
}

func (s *stubAggregator) Aggregate(ctx context.Context, triples []services.ValidTriple, userID, sessionID string) models.Evaluation {
	return s.evaluation
}

// stubAnalytics implements services.AnalyticsService via function fields.
type stubAnalytics struct {
	userStats     func(userID string) models.UserStats
	performance   func(userID string) models.PerformanceBreakdown
	monthlyScores func(userID string, months int) (*models.MonthlyScores, error)
	testScores    func(userID string, limit int) (*models.TestScores, error)
	history       func(userID string) ([]models.Interview, error)
}

func (s *stubAnalytics) UserStats(userID string) models.UserStats {
	return s.userStats(userID)
}

func (s *stubAnalytics) PerformanceBreakdown(userID string) models.PerformanceBreakdown {
	return s.performance(userID)
}

func (s *stubAnalytics) MonthlyScores(userID string, months int) (*models.MonthlyScores, error) {
	return s.monthlyScores(userID, months)
}

func (s *stubAnalytics) TestScores(userID string, limit int) (*models.TestScores, error) {
	return s.testScores(userID, limit)
}

func (s *stubAnalytics) InterviewHistory(userID string) ([]models.Interview, error) {
	return s.history(userID)
}

// stubStorage implements services.StorageService without touching disk.
type stubStorage struct {
	saveErr error
	deleted []string
}

func (s *stubStorage) SaveResume(file *multipart.FileHeader) (string, string, error) {
	if s.saveErr != nil {
		return "", "", s.saveErr
	}
	return "resume_test.pdf", "/tmp/uploads/resume_test.pdf", nil
}

func (s *stubStorage) GetFilePath(filename string) string { return "/tmp/uploads/" + filename }

func (s *stubStorage) DeleteFile(filename string) error {
	s.deleted = append(s.deleted, filename)
	return nil
}

func (s *stubStorage) EnsureUploadDir() error { return nil }

// stubPDFParser implements services.PDFParserService.
type stubPDFParser struct {
	text string
	err  error
}

func (s *stubPDFParser) ExtractText(filepath string) (string, error) {
	return s.text, s.err
}

func (s *stubPDFParser) ExtractResumeText(filepath string) (string, error) {
	return s.text, s.err
}

// stubQuestionService implements services.QuestionService.
type stubQuestionService struct {
	questions []models.Question
	err       error
}

func (s *stubQuestionService) Generate(ctx context.Context, resumeText string) ([]models.Question, error) {
	return s.questions, s.err
}

// stubIndexer records enqueued jobs.
type stubIndexer struct {
	jobs []services.IndexJob
}

func (s *stubIndexer) Start(ctx context.Context)     {}
func (s *stubIndexer) Stop()                         {}
func (s *stubIndexer) Enqueue(job services.IndexJob) { s.jobs = append(s.jobs, job) }

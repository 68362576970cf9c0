package services

import (
	"context"
	"log"
	"math/rand"
	"sync"

	"finser-backend/internal/adapters/persistence/models"
	"finser-backend/internal/core/domain"
)

// QuizSize is the number of questions sampled per verification attempt
const QuizSize = 5

// quizQuestion pairs a security question with its expected answer. Answers
// never leave this package.
type quizQuestion struct {
	ID       int
	Question string
	Answer   string
}

// questionCatalog is the static verification question set
var questionCatalog = []quizQuestion{
	{1, "What is your last four digits of your bank account number?", "1234"},
	{2, "What is the amount of your most recent loan repayment?", "5000"},
	{3, "What is the credit limit on your credit card?", "20000"},
	{4, "What is the current balance in your savings account?", "10000"},
	{5, "What was the date of your last mortgage payment?", "2024-01-15"},
	{6, "What is the routing number of your bank account?", "987654321"},
	{7, "What is your PIN for your online banking account?", "4321"},
	{8, "What is the last transaction ID from your bank statement?", "TXN12345"},
	{9, "What is the balance of your retirement fund?", "150000"},
	{10, "What was the amount of your last wire transfer?", "2500"},
}

// QuestionPrompt is a question as presented to the caller
type QuestionPrompt struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
}

// QuizAnswer is one submitted answer, keyed by question ID
type QuizAnswer struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

// QuizResult is the outcome of a verification attempt
type QuizResult struct {
	Passed bool   `json:"passed"`
	Status string `json:"status"`
}

// quizKey identifies one outstanding verification attempt
type quizKey struct {
	userID uint
	formID uint
}

// QuizService runs the security-question gate that lets a user move a
// pending submission to approved.
type QuizService struct {
	forms *FormService

	// issued holds the question IDs sampled per attempt; grading only
	// accepts the exact set that was issued.
	mu     sync.Mutex
	issued map[quizKey][]int
}

// NewQuizService creates a new quiz service
func NewQuizService(forms *FormService) *QuizService {
	return &QuizService{
		forms:  forms,
		issued: make(map[quizKey][]int),
	}
}

// Start checks that the form belongs to userID and is still pending, then
// samples QuizSize questions uniformly at random without replacement and
// records the sample for grading. Every invocation reshuffles, replacing
// any previously issued sample for the same form.
func (s *QuizService) Start(ctx context.Context, userID, formID uint) ([]QuestionPrompt, error) {
	form, err := s.forms.GetOwned(ctx, userID, formID)
	if err != nil {
		return nil, err
	}
	if form.Status != models.FormStatusPending {
		return nil, domain.ErrQuizNotEligible
	}

	prompts := sampleQuestions()

	ids := make([]int, 0, QuizSize)
	for _, p := range prompts {
		ids = append(ids, p.ID)
	}

	s.mu.Lock()
	s.issued[quizKey{userID, formID}] = ids
	s.mu.Unlock()

	return prompts, nil
}

// Submit grades a verification attempt against the sample Start issued.
// All QuizSize answers must address exactly the issued questions and match
// their expected answers; a pass is persisted through the same
// status-update path admin review uses. A graded outcome, pass or fail,
// consumes the sample — a fail leaves the form untouched and a retry needs
// a fresh Start. A malformed answer set is an error and does not consume
// the sample.
func (s *QuizService) Submit(ctx context.Context, userID, formID uint, answers []QuizAnswer) (*QuizResult, error) {
	form, err := s.forms.GetOwned(ctx, userID, formID)
	if err != nil {
		return nil, err
	}
	if form.Status != models.FormStatusPending {
		return nil, domain.ErrQuizNotEligible
	}

	key := quizKey{userID, formID}

	s.mu.Lock()
	issued, ok := s.issued[key]
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrQuizNotStarted
	}

	passed, err := grade(answers, issued)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.issued, key)
	s.mu.Unlock()

	if !passed {
		log.Printf("⚠️ Verification failed for form %d", formID)
		return &QuizResult{Passed: false, Status: form.Status}, nil
	}

	if err := s.forms.MarkApproved(ctx, formID); err != nil {
		return nil, err
	}

	return &QuizResult{Passed: true, Status: models.FormStatusApproved}, nil
}

// sampleQuestions picks QuizSize distinct questions at random
func sampleQuestions() []QuestionPrompt {
	indexes := rand.Perm(len(questionCatalog))[:QuizSize]

	prompts := make([]QuestionPrompt, 0, QuizSize)
	for _, i := range indexes {
		prompts = append(prompts, QuestionPrompt{
			ID:       questionCatalog[i].ID,
			Question: questionCatalog[i].Question,
		})
	}
	return prompts
}

// grade checks a full answer set against the issued sample by exact string
// equality. A malformed set (wrong size, duplicate, or a question outside
// the issued sample) is an error; a wrong answer is merely a fail.
func grade(answers []QuizAnswer, issued []int) (bool, error) {
	if len(answers) != len(issued) {
		return false, domain.ErrQuizBadAnswerSet
	}

	sampled := make(map[int]bool, len(issued))
	for _, id := range issued {
		sampled[id] = true
	}

	seen := make(map[int]bool, len(answers))
	for _, a := range answers {
		if seen[a.QuestionID] {
			return false, domain.ErrQuizBadAnswerSet
		}
		seen[a.QuestionID] = true

		if !sampled[a.QuestionID] {
			return false, domain.ErrQuizUnknownSample
		}

		q, ok := questionByID(a.QuestionID)
		if !ok {
			return false, domain.ErrQuizUnknownSample
		}
		if a.Answer != q.Answer {
			return false, nil
		}
	}
	return true, nil
}

func questionByID(id int) (*quizQuestion, bool) {
	for i := range questionCatalog {
		if questionCatalog[i].ID == id {
			return &questionCatalog[i], true
		}
	}
	return nil, false
}

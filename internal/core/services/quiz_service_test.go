package services

import (
	"context"
	"errors"
	"testing"

	"finser-backend/internal/adapters/persistence/models"
	"finser-backend/internal/core/domain"
)

func newQuizServiceForTest() (*QuizService, *fakeFormRepo) {
	formRepo := newFakeFormRepo()
	userRepo := newFakeUserRepo()
	forms := NewFormService(formRepo, userRepo)
	return NewQuizService(forms), formRepo
}

func seedPendingForm(t *testing.T, formRepo *fakeFormRepo, userID uint) *models.Form {
	t.Helper()
	form := &models.Form{UserID: userID, FormType: "credit_form", Token: "TOKQUIZ00000", Status: models.FormStatusPending}
	if err := formRepo.Create(context.Background(), form); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return form
}

// answersFor builds the correct answer set for an issued sample
func answersFor(t *testing.T, prompts []QuestionPrompt) []QuizAnswer {
	t.Helper()
	answers := make([]QuizAnswer, 0, len(prompts))
	for _, p := range prompts {
		q, ok := questionByID(p.ID)
		if !ok {
			t.Fatalf("Issued unknown question %d", p.ID)
		}
		answers = append(answers, QuizAnswer{QuestionID: q.ID, Answer: q.Answer})
	}
	return answers
}

func TestStartSamplesDistinctQuestions(t *testing.T) {
	svc, formRepo := newQuizServiceForTest()
	form := seedPendingForm(t, formRepo, 1)

	for round := 0; round < 10; round++ {
		prompts, err := svc.Start(context.Background(), 1, form.ID)
		if err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		if len(prompts) != QuizSize {
			t.Fatalf("Expected %d prompts, got %d", QuizSize, len(prompts))
		}
		seen := make(map[int]bool)
		for _, p := range prompts {
			if seen[p.ID] {
				t.Errorf("Duplicate question %d in sample", p.ID)
			}
			seen[p.ID] = true
			if _, ok := questionByID(p.ID); !ok {
				t.Errorf("Sampled unknown question %d", p.ID)
			}
			if p.Question == "" {
				t.Errorf("Question %d has empty prompt", p.ID)
			}
		}
	}
}

func TestStartNotEligible(t *testing.T) {
	svc, formRepo := newQuizServiceForTest()
	form := seedPendingForm(t, formRepo, 1)
	form.Status = models.FormStatusReviewed

	if _, err := svc.Start(context.Background(), 1, form.ID); !errors.Is(err, domain.ErrQuizNotEligible) {
		t.Errorf("Expected ErrQuizNotEligible, got %v", err)
	}
}

func TestStartForeignForm(t *testing.T) {
	svc, formRepo := newQuizServiceForTest()
	form := seedPendingForm(t, formRepo, 2)

	if _, err := svc.Start(context.Background(), 1, form.ID); !errors.Is(err, domain.ErrFormNotFound) {
		t.Errorf("Expected ErrFormNotFound for foreign form, got %v", err)
	}
}

func TestSubmitPassApproves(t *testing.T) {
	svc, formRepo := newQuizServiceForTest()
	form := seedPendingForm(t, formRepo, 1)
	ctx := context.Background()

	prompts, err := svc.Start(ctx, 1, form.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	result, err := svc.Submit(ctx, 1, form.ID, answersFor(t, prompts))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !result.Passed {
		t.Error("Expected a pass")
	}
	if result.Status != models.FormStatusApproved {
		t.Errorf("Result status = %s, want %s", result.Status, models.FormStatusApproved)
	}
	if form.Status != models.FormStatusApproved {
		t.Errorf("Persisted status = %s, want %s", form.Status, models.FormStatusApproved)
	}
}

func TestSubmitRequiresStart(t *testing.T) {
	svc, formRepo := newQuizServiceForTest()
	form := seedPendingForm(t, formRepo, 1)

	answers := make([]QuizAnswer, 0, QuizSize)
	for _, q := range questionCatalog[:QuizSize] {
		answers = append(answers, QuizAnswer{QuestionID: q.ID, Answer: q.Answer})
	}

	if _, err := svc.Submit(context.Background(), 1, form.ID, answers); !errors.Is(err, domain.ErrQuizNotStarted) {
		t.Errorf("Expected ErrQuizNotStarted, got %v", err)
	}
	if form.Status != models.FormStatusPending {
		t.Errorf("Status = %s, want %s", form.Status, models.FormStatusPending)
	}
}

func TestSubmitRejectsUnissuedQuestions(t *testing.T) {
	svc, formRepo := newQuizServiceForTest()
	form := seedPendingForm(t, formRepo, 1)
	ctx := context.Background()

	prompts, err := svc.Start(ctx, 1, form.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	issued := make(map[int]bool, len(prompts))
	for _, p := range prompts {
		issued[p.ID] = true
	}

	// correct answers, but one question swapped for a catalog question
	// outside the issued sample
	answers := answersFor(t, prompts)
	for _, q := range questionCatalog {
		if !issued[q.ID] {
			answers[0] = QuizAnswer{QuestionID: q.ID, Answer: q.Answer}
			break
		}
	}

	if _, err := svc.Submit(ctx, 1, form.ID, answers); !errors.Is(err, domain.ErrQuizUnknownSample) {
		t.Errorf("Expected ErrQuizUnknownSample, got %v", err)
	}
	if form.Status != models.FormStatusPending {
		t.Errorf("Status = %s, want %s", form.Status, models.FormStatusPending)
	}
	if formRepo.statusUpdates != 0 {
		t.Errorf("No status update expected, got %d", formRepo.statusUpdates)
	}
}

func TestSubmitSingleMismatchFails(t *testing.T) {
	svc, formRepo := newQuizServiceForTest()
	form := seedPendingForm(t, formRepo, 1)
	ctx := context.Background()

	prompts, err := svc.Start(ctx, 1, form.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	answers := answersFor(t, prompts)
	answers[2].Answer = "wrong"

	result, err := svc.Submit(ctx, 1, form.ID, answers)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.Passed {
		t.Error("Expected a fail")
	}
	if result.Status != models.FormStatusPending {
		t.Errorf("Result status = %s, want %s", result.Status, models.FormStatusPending)
	}
	if form.Status != models.FormStatusPending {
		t.Errorf("A fail must leave the form untouched, status = %s", form.Status)
	}
	if formRepo.statusUpdates != 0 {
		t.Errorf("A fail must not issue status updates, got %d", formRepo.statusUpdates)
	}

	// a fail consumes the sample: a retry needs a fresh Start
	if _, err := svc.Submit(ctx, 1, form.ID, answersFor(t, prompts)); !errors.Is(err, domain.ErrQuizNotStarted) {
		t.Errorf("Expected ErrQuizNotStarted after a graded fail, got %v", err)
	}
}

func TestSubmitMalformedAnswerSets(t *testing.T) {
	svc, formRepo := newQuizServiceForTest()
	form := seedPendingForm(t, formRepo, 1)
	ctx := context.Background()

	prompts, err := svc.Start(ctx, 1, form.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	good := answersFor(t, prompts)

	short := good[:QuizSize-1]
	if _, err := svc.Submit(ctx, 1, form.ID, short); !errors.Is(err, domain.ErrQuizBadAnswerSet) {
		t.Errorf("Short set: expected ErrQuizBadAnswerSet, got %v", err)
	}

	dup := append([]QuizAnswer(nil), good...)
	dup[1] = dup[0]
	if _, err := svc.Submit(ctx, 1, form.ID, dup); !errors.Is(err, domain.ErrQuizBadAnswerSet) {
		t.Errorf("Duplicate set: expected ErrQuizBadAnswerSet, got %v", err)
	}

	unknown := append([]QuizAnswer(nil), good...)
	unknown[0].QuestionID = 99
	if _, err := svc.Submit(ctx, 1, form.ID, unknown); !errors.Is(err, domain.ErrQuizUnknownSample) {
		t.Errorf("Unknown question: expected ErrQuizUnknownSample, got %v", err)
	}

	if form.Status != models.FormStatusPending {
		t.Errorf("Malformed sets must leave the form untouched, status = %s", form.Status)
	}

	// malformed sets do not consume the issued sample
	result, err := svc.Submit(ctx, 1, form.ID, good)
	if err != nil {
		t.Fatalf("Submit after malformed attempts failed: %v", err)
	}
	if !result.Passed {
		t.Error("Correct answers for the issued sample should still pass")
	}
}

func TestStartReshufflesIssuedSample(t *testing.T) {
	svc, formRepo := newQuizServiceForTest()
	form := seedPendingForm(t, formRepo, 1)
	ctx := context.Background()

	if _, err := svc.Start(ctx, 1, form.ID); err != nil {
		t.Fatalf("First Start failed: %v", err)
	}
	second, err := svc.Start(ctx, 1, form.ID)
	if err != nil {
		t.Fatalf("Second Start failed: %v", err)
	}

	// grading runs against the latest sample
	result, err := svc.Submit(ctx, 1, form.ID, answersFor(t, second))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !result.Passed {
		t.Error("Answers for the latest sample should pass")
	}
}

func TestSubmitNotEligible(t *testing.T) {
	svc, formRepo := newQuizServiceForTest()
	form := seedPendingForm(t, formRepo, 1)
	ctx := context.Background()

	prompts, err := svc.Start(ctx, 1, form.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	form.Status = models.FormStatusApproved

	if _, err := svc.Submit(ctx, 1, form.ID, answersFor(t, prompts)); !errors.Is(err, domain.ErrQuizNotEligible) {
		t.Errorf("Expected ErrQuizNotEligible, got %v", err)
	}
}

func TestGradeBoundToIssuedSample(t *testing.T) {
	issued := []int{1, 2, 3, 4, 5}

	answers := make([]QuizAnswer, 0, QuizSize)
	for _, id := range issued {
		q, _ := questionByID(id)
		answers = append(answers, QuizAnswer{QuestionID: id, Answer: q.Answer})
	}

	passed, err := grade(answers, issued)
	if err != nil {
		t.Fatalf("grade failed: %v", err)
	}
	if !passed {
		t.Error("Correct answers for the issued sample should pass")
	}

	// same answers against a different sample must be rejected
	if _, err := grade(answers, []int{6, 7, 8, 9, 10}); !errors.Is(err, domain.ErrQuizUnknownSample) {
		t.Errorf("Expected ErrQuizUnknownSample for unissued questions, got %v", err)
	}
}

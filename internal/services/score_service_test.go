package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/nptel-prep/quiz-service/internal/cache"
	"github.com/nptel-prep/quiz-service/internal/models"
	"github.com/nptel-prep/quiz-service/internal/testutil"
	"github.com/nptel-prep/quiz-service/internal/validator"
)

func newTestScoreService(repo *testutil.FakeRepository) ScoreService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	quiz := NewQuizService(models.DefaultQuestions())
	// nil redis client: cache degrades to direct reads, nil bus: no events.
	return NewScoreService(repo, quiz, cache.NewLeaderboardCache(nil), nil, logger, validator.New())
}

func seedUser(t *testing.T, repo *testutil.FakeRepository, username string, scores map[string]int) {
	t.Helper()
	user := models.NewUser(username, "pw")
	for section, score := range scores {
		user.SetScore(section, score)
	}
	if err := repo.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
}

func intPtr(v int) *int { return &v }

func TestScoreServiceSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		svc := newTestScoreService(testutil.NewFakeRepository())
		_, err := svc.Submit(ctx, &models.SubmitRequest{Username: "ghost", Score: intPtr(3)})
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("Submit() error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("client score trusted verbatim", func(t *testing.T) {
		repo := testutil.NewFakeRepository()
		seedUser(t, repo, "alice", nil)
		svc := newTestScoreService(repo)

		// Answers would grade to 0, but the supplied score wins.
		best, err := svc.Submit(ctx, &models.SubmitRequest{
			Username: "alice",
			Answers:  []string{"London", "5", "Red"},
			Score:    intPtr(9),
			Section:  "quiz1",
		})
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if best != 9 {
			t.Errorf("best = %d, want 9", best)
		}
	})

	t.Run("server-side grading when no score supplied", func(t *testing.T) {
		repo := testutil.NewFakeRepository()
		seedUser(t, repo, "bob", nil)
		svc := newTestScoreService(repo)

		best, err := svc.Submit(ctx, &models.SubmitRequest{
			Username: "bob",
			Answers:  []string{"Paris", "5", "Blue"},
		})
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if best != 2 {
			t.Errorf("best = %d, want 2", best)
		}
		if got := repo.Users.Stored("bob").BestScore(DefaultSection); got != 2 {
			t.Errorf("stored best = %d, want 2", got)
		}
	})

	t.Run("lower or equal score leaves best unchanged", func(t *testing.T) {
		repo := testutil.NewFakeRepository()
		seedUser(t, repo, "carol", map[string]int{"quiz1": 7})
		svc := newTestScoreService(repo)

		for _, score := range []int{5, 7} {
			best, err := svc.Submit(ctx, &models.SubmitRequest{
				Username: "carol", Section: "quiz1", Score: intPtr(score),
			})
			if err != nil {
				t.Fatalf("Submit(%d) error = %v", score, err)
			}
			if best != 7 {
				t.Errorf("Submit(%d) best = %d, want 7", score, best)
			}
		}
		if got := repo.Users.Stored("carol").BestScore("quiz1"); got != 7 {
			t.Errorf("stored best = %d, want 7", got)
		}
	})

	t.Run("higher score becomes the new best", func(t *testing.T) {
		repo := testutil.NewFakeRepository()
		seedUser(t, repo, "dave", map[string]int{"quiz1": 4})
		svc := newTestScoreService(repo)

		best, err := svc.Submit(ctx, &models.SubmitRequest{
			Username: "dave", Section: "quiz1", Score: intPtr(8),
		})
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if best != 8 {
			t.Errorf("best = %d, want 8", best)
		}
		if got := repo.Users.Stored("dave").BestScore("quiz1"); got != 8 {
			t.Errorf("stored best = %d, want 8", got)
		}
	})

	t.Run("sections are independent", func(t *testing.T) {
		repo := testutil.NewFakeRepository()
		seedUser(t, repo, "erin", map[string]int{"PYQ": 5})
		svc := newTestScoreService(repo)

		if _, err := svc.Submit(ctx, &models.SubmitRequest{
			Username: "erin", Section: "Assignment", Score: intPtr(3),
		}); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		stored := repo.Users.Stored("erin")
		if stored.BestScore("PYQ") != 5 || stored.BestScore("Assignment") != 3 {
			t.Errorf("scores = %v, want PYQ:5 Assignment:3", stored.Scores.Data())
		}
	})

	t.Run("negative client score fails validation", func(t *testing.T) {
		repo := testutil.NewFakeRepository()
		seedUser(t, repo, "frank", nil)
		svc := newTestScoreService(repo)

		var validationErrs validator.ValidationErrors
		_, err := svc.Submit(ctx, &models.SubmitRequest{Username: "frank", Score: intPtr(-1)})
		if !errors.As(err, &validationErrs) {
			t.Fatalf("Submit() error = %v, want validation errors", err)
		}
	})
}

func TestScoreServiceLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("sorted descending for the section", func(t *testing.T) {
		repo := testutil.NewFakeRepository()
		seedUser(t, repo, "A", map[string]int{"quiz1": 7})
		seedUser(t, repo, "B", map[string]int{"quiz1": 9})
		svc := newTestScoreService(repo)

		entries, err := svc.Leaderboard(ctx, "quiz1")
		if err != nil {
			t.Fatalf("Leaderboard() error = %v", err)
		}
		want := []models.LeaderboardEntry{
			{Username: "B", Score: 9},
			{Username: "A", Score: 7},
		}
		if len(entries) != len(want) {
			t.Fatalf("got %d entries, want %d", len(entries), len(want))
		}
		for i := range want {
			if entries[i] != want[i] {
				t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
			}
		}
	})

	t.Run("unused section defaults everyone to zero", func(t *testing.T) {
		repo := testutil.NewFakeRepository()
		seedUser(t, repo, "A", map[string]int{"quiz1": 7})
		seedUser(t, repo, "B", map[string]int{"quiz1": 9})
		svc := newTestScoreService(repo)

		entries, err := svc.Leaderboard(ctx, "unused")
		if err != nil {
			t.Fatalf("Leaderboard() error = %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		for _, e := range entries {
			if e.Score != 0 {
				t.Errorf("entry %+v, want score 0", e)
			}
		}
	})

	t.Run("ties keep username order", func(t *testing.T) {
		repo := testutil.NewFakeRepository()
		seedUser(t, repo, "zed", map[string]int{"default": 5})
		seedUser(t, repo, "amy", map[string]int{"default": 5})
		svc := newTestScoreService(repo)

		entries, err := svc.Leaderboard(ctx, "")
		if err != nil {
			t.Fatalf("Leaderboard() error = %v", err)
		}
		if entries[0].Username != "amy" || entries[1].Username != "zed" {
			t.Errorf("tie order = %v, want amy before zed", entries)
		}
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		repo := testutil.NewFakeRepository()
		repo.Users.Err = errors.New("connection reset")
		svc := newTestScoreService(repo)

		if _, err := svc.Leaderboard(ctx, "quiz1"); err == nil {
			t.Fatal("Leaderboard() expected error")
		}
	})
}

func TestScoreServiceExportLeaderboard(t *testing.T) {
	repo := testutil.NewFakeRepository()
	seedUser(t, repo, "A", map[string]int{"quiz1": 7})
	seedUser(t, repo, "B", map[string]int{"quiz1": 9})
	svc := newTestScoreService(repo)

	f, err := svc.ExportLeaderboard(context.Background(), "quiz1")
	if err != nil {
		t.Fatalf("ExportLeaderboard() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Leaderboard")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[1][1] != "B" || rows[1][2] != "9" {
		t.Errorf("first data row = %v, want rank 1 B 9", rows[1])
	}
	if rows[2][1] != "A" || rows[2][2] != "7" {
		t.Errorf("second data row = %v, want rank 2 A 7", rows[2])
	}
}

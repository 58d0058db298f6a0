package storage

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/falci/falci/internal/model"
)

// runStoreContract exercises the behavior both implementations must share:
// same ordering, same optional-field defaulting, same not-found semantics.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("CreateFortune_RoundTrip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		data, err := model.EncodeData(model.TarotData{Cards: []string{"Budala", "Büyücü", "Yüksek Rahibe"}})
		if err != nil {
			t.Fatalf("EncodeData failed: %v", err)
		}

		created, err := s.CreateFortune(ctx, CreateFortuneInput{
			UserID:  "u1",
			Type:    model.FortuneTarot,
			Title:   "Tarot Falı - Budala, Büyücü, Yüksek Rahibe",
			Content: "Kartlarınız yeni bir başlangıca işaret ediyor.",
			Data:    data,
		})
		if err != nil {
			t.Fatalf("CreateFortune failed: %v", err)
		}
		if created.ID == "" {
			t.Fatal("expected generated id")
		}
		if created.CreatedAt.IsZero() {
			t.Fatal("expected CreatedAt to be set")
		}

		fetched, err := s.GetFortune(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetFortune failed: %v", err)
		}
		if fetched.Type != created.Type {
			t.Errorf("type mismatch: got %q, want %q", fetched.Type, created.Type)
		}
		if fetched.Title != created.Title {
			t.Errorf("title mismatch: got %q, want %q", fetched.Title, created.Title)
		}
		if fetched.Content != created.Content {
			t.Errorf("content mismatch: got %q, want %q", fetched.Content, created.Content)
		}
		if !bytes.Equal(fetched.Data, created.Data) {
			t.Errorf("payload mismatch: got %s, want %s", fetched.Data, created.Data)
		}
		if fetched.UserID != "u1" {
			t.Errorf("user id mismatch: got %q", fetched.UserID)
		}
	})

	t.Run("CreateFortune_OptionalFieldsDefaultAbsent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.CreateFortune(ctx, CreateFortuneInput{
			Type:    model.FortuneDream,
			Title:   "Rüya Tabiri",
			Content: "Rüyanız derin bir anlam taşıyor.",
		})
		if err != nil {
			t.Fatalf("CreateFortune without optional fields failed: %v", err)
		}

		fetched, err := s.GetFortune(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetFortune failed: %v", err)
		}
		if fetched.UserID != "" {
			t.Errorf("expected absent user id, got %q", fetched.UserID)
		}
		if len(fetched.Data) != 0 {
			t.Errorf("expected absent payload, got %s", fetched.Data)
		}
	})

	t.Run("CreateFortune_RejectsInvalidType", func(t *testing.T) {
		s := newStore(t)

		_, err := s.CreateFortune(context.Background(), CreateFortuneInput{
			Type:    model.FortuneType("palmistry"),
			Title:   "t",
			Content: "c",
		})
		if !errors.Is(err, ErrInvalidType) {
			t.Fatalf("expected ErrInvalidType, got %v", err)
		}
	})

	t.Run("GetFortunes_NewestFirst", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var ids []string
		for _, title := range []string{"first", "second", "third"} {
			f, err := s.CreateFortune(ctx, CreateFortuneInput{
				Type:    model.FortuneHoroscope,
				Title:   title,
				Content: "c",
			})
			if err != nil {
				t.Fatalf("CreateFortune failed: %v", err)
			}
			ids = append(ids, f.ID)
		}

		fortunes, err := s.GetFortunes(ctx, "")
		if err != nil {
			t.Fatalf("GetFortunes failed: %v", err)
		}
		if len(fortunes) != 3 {
			t.Fatalf("expected 3 fortunes, got %d", len(fortunes))
		}

		// Strictly newest first, even with identical timestamps.
		for i, wantID := range []string{ids[2], ids[1], ids[0]} {
			if fortunes[i].ID != wantID {
				t.Errorf("position %d: got %s, want %s", i, fortunes[i].ID, wantID)
			}
		}
		for i := 1; i < len(fortunes); i++ {
			if fortunes[i].CreatedAt.After(fortunes[i-1].CreatedAt) {
				t.Error("fortunes not ordered by creation time descending")
			}
		}
	})

	t.Run("GetFortunes_FilterByUser", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, userID := range []string{"u1", "u2", "u1", ""} {
			if _, err := s.CreateFortune(ctx, CreateFortuneInput{
				UserID:  userID,
				Type:    model.FortuneDream,
				Title:   "t",
				Content: "c",
			}); err != nil {
				t.Fatalf("CreateFortune failed: %v", err)
			}
		}

		fortunes, err := s.GetFortunes(ctx, "u1")
		if err != nil {
			t.Fatalf("GetFortunes failed: %v", err)
		}
		if len(fortunes) != 2 {
			t.Fatalf("expected 2 fortunes for u1, got %d", len(fortunes))
		}
		for _, f := range fortunes {
			if f.UserID != "u1" {
				t.Errorf("filter leaked record for user %q", f.UserID)
			}
		}

		all, err := s.GetFortunes(ctx, "")
		if err != nil {
			t.Fatalf("GetFortunes failed: %v", err)
		}
		if len(all) != 4 {
			t.Errorf("expected 4 fortunes unfiltered, got %d", len(all))
		}
	})

	t.Run("GetFortune_NotFound", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetFortune(context.Background(), "missing")
		if !errors.Is(err, ErrFortuneNotFound) {
			t.Fatalf("expected ErrFortuneNotFound, got %v", err)
		}
	})

	t.Run("DeleteFortune_IdempotentFalse", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		f, err := s.CreateFortune(ctx, CreateFortuneInput{
			Type:    model.FortuneCoffee,
			Title:   "Kahve Falı",
			Content: "c",
		})
		if err != nil {
			t.Fatalf("CreateFortune failed: %v", err)
		}

		deleted, err := s.DeleteFortune(ctx, f.ID)
		if err != nil {
			t.Fatalf("DeleteFortune failed: %v", err)
		}
		if !deleted {
			t.Fatal("expected first delete to report true")
		}

		deleted, err = s.DeleteFortune(ctx, f.ID)
		if err != nil {
			t.Fatalf("second DeleteFortune failed: %v", err)
		}
		if deleted {
			t.Fatal("expected second delete to report false")
		}

		if _, err := s.GetFortune(ctx, f.ID); !errors.Is(err, ErrFortuneNotFound) {
			t.Fatalf("expected record gone, got %v", err)
		}
	})

	t.Run("DeleteFortune_MissingHasNoSideEffects", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		f, err := s.CreateFortune(ctx, CreateFortuneInput{
			Type:    model.FortuneTarot,
			Title:   "t",
			Content: "c",
		})
		if err != nil {
			t.Fatalf("CreateFortune failed: %v", err)
		}

		deleted, err := s.DeleteFortune(ctx, "missing")
		if err != nil {
			t.Fatalf("DeleteFortune failed: %v", err)
		}
		if deleted {
			t.Fatal("expected delete of missing id to report false")
		}

		if _, err := s.GetFortune(ctx, f.ID); err != nil {
			t.Fatalf("unrelated record should survive: %v", err)
		}
	})

	t.Run("Users_CreateAndLookup", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.CreateUser(ctx, CreateUserInput{
			Username:     "ayse",
			PasswordHash: "$argon2id$stub",
			ZodiacSign:   "Aslan",
		})
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if created.ID == "" {
			t.Fatal("expected generated user id")
		}

		byID, err := s.GetUser(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if byID.Username != "ayse" || byID.ZodiacSign != "Aslan" {
			t.Errorf("unexpected user: %+v", byID)
		}

		byName, err := s.GetUserByUsername(ctx, "ayse")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if byName.ID != created.ID {
			t.Errorf("lookup mismatch: got %s, want %s", byName.ID, created.ID)
		}

		if _, err := s.CreateUser(ctx, CreateUserInput{
			Username:     "ayse",
			PasswordHash: "$argon2id$other",
		}); !errors.Is(err, ErrUsernameExists) {
			t.Fatalf("expected ErrUsernameExists, got %v", err)
		}

		if _, err := s.GetUser(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

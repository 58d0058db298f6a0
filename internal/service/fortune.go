// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/falci/falci/internal/metrics"
	"github.com/falci/falci/internal/model"
	"github.com/falci/falci/internal/storage"
)

// Service errors.
var (
	ErrCardCount          = errors.New("exactly three cards must be selected")
	ErrImageMissing       = errors.New("no image uploaded")
	ErrImageTooLarge      = errors.New("image exceeds size limit")
	ErrSignMissing        = errors.New("zodiac sign is required")
	ErrDescriptionMissing = errors.New("dream description is required")
	ErrInvalidTypeFilter  = errors.New("invalid fortune type filter")
	ErrFortuneNotFound    = errors.New("fortune not found")
	ErrGeneration         = errors.New("interpretation could not be generated")
)

// MaxImageBytes is the fixed size ceiling for uploaded cup photos.
const MaxImageBytes = 5 * 1024 * 1024

// Generator produces interpretive text via the external AI provider.
// Each call maps to at most one provider call; errors are terminal.
type Generator interface {
	InterpretTarot(ctx context.Context, cards []string) (string, error)
	AnalyzeCoffee(ctx context.Context, image []byte, mimeType string) (string, error)
	DailyHoroscope(ctx context.Context, zodiacSign string) (string, error)
	InterpretDream(ctx context.Context, description, emotion string) (string, error)
}

// ImageArchiver stores an uploaded image and returns its public URL.
type ImageArchiver interface {
	Archive(ctx context.Context, image []byte, folder string) (string, error)
}

// FortuneService orchestrates validation, generation and persistence.
type FortuneService struct {
	store     storage.Store
	generator Generator
	archiver  ImageArchiver // nil when archival is not configured
	metrics   metrics.Recorder
	logger    *slog.Logger
}

// NewFortuneService creates a FortuneService. archiver may be nil.
func NewFortuneService(store storage.Store, generator Generator, archiver ImageArchiver, recorder metrics.Recorder, logger *slog.Logger) *FortuneService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FortuneService{
		store:     store,
		generator: generator,
		archiver:  archiver,
		metrics:   recorder,
		logger:    logger,
	}
}

// GenerationResult is the outcome of one fortune request.
//
// SaveFailed distinguishes "generated but not saved" from a generation
// failure: generation already succeeded, so a persistence error surfaces as
// a soft warning, never as a hard failure.
type GenerationResult struct {
	Interpretation string
	Fortune        *model.Fortune // nil when persistence was skipped or failed
	SaveFailed     bool
}

// InterpretTarotInput defines input for a tarot reading.
type InterpretTarotInput struct {
	Cards  []string
	UserID string
}

// InterpretTarot validates the spread, generates an interpretation and
// persists the result when a user id was supplied.
func (s *FortuneService) InterpretTarot(ctx context.Context, input InterpretTarotInput) (*GenerationResult, error) {
	if len(input.Cards) != model.SpreadSize {
		return nil, ErrCardCount
	}
	for _, card := range input.Cards {
		if strings.TrimSpace(card) == "" {
			return nil, ErrCardCount
		}
	}

	interpretation, err := s.generate(ctx, model.FortuneTarot, func() (string, error) {
		return s.generator.InterpretTarot(ctx, input.Cards)
	})
	if err != nil {
		return nil, err
	}

	title := "Tarot Falı - " + strings.Join(input.Cards, ", ")
	fortune, saveFailed := s.persist(ctx, input.UserID, model.FortuneTarot, title, interpretation,
		model.TarotData{Cards: input.Cards})

	return &GenerationResult{
		Interpretation: interpretation,
		Fortune:        fortune,
		SaveFailed:     saveFailed,
	}, nil
}

// AnalyzeCoffeeInput defines input for a coffee-cup analysis.
type AnalyzeCoffeeInput struct {
	Image    []byte
	MimeType string
	UserID   string
}

// AnalyzeCoffee validates the uploaded photo, generates an interpretation
// and persists the result when a user id was supplied. When an archiver is
// configured the photo is uploaded and its URL recorded in the payload;
// archival failures are logged and ignored.
func (s *FortuneService) AnalyzeCoffee(ctx context.Context, input AnalyzeCoffeeInput) (*GenerationResult, error) {
	if len(input.Image) == 0 {
		return nil, ErrImageMissing
	}
	if len(input.Image) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}

	interpretation, err := s.generate(ctx, model.FortuneCoffee, func() (string, error) {
		return s.generator.AnalyzeCoffee(ctx, input.Image, input.MimeType)
	})
	if err != nil {
		return nil, err
	}

	var imageURL string
	if s.archiver != nil {
		imageURL, err = s.archiver.Archive(ctx, input.Image, "coffee")
		if err != nil {
			s.logger.WarnContext(ctx, "coffee image not archived", slog.String("error", err.Error()))
			imageURL = ""
		}
	}

	fortune, saveFailed := s.persist(ctx, input.UserID, model.FortuneCoffee, "Kahve Falı", interpretation,
		model.CoffeeData{
			ImageSize: int64(len(input.Image)),
			ImageType: input.MimeType,
			ImageURL:  imageURL,
		})

	return &GenerationResult{
		Interpretation: interpretation,
		Fortune:        fortune,
		SaveFailed:     saveFailed,
	}, nil
}

// DailyHoroscopeInput defines input for a daily horoscope.
type DailyHoroscopeInput struct {
	ZodiacSign string
	UserID     string
}

// DailyHoroscope validates the sign, generates today's reading and persists
// the result when a user id was supplied.
func (s *FortuneService) DailyHoroscope(ctx context.Context, input DailyHoroscopeInput) (*GenerationResult, error) {
	sign := strings.TrimSpace(input.ZodiacSign)
	if sign == "" {
		return nil, ErrSignMissing
	}

	interpretation, err := s.generate(ctx, model.FortuneHoroscope, func() (string, error) {
		return s.generator.DailyHoroscope(ctx, sign)
	})
	if err != nil {
		return nil, err
	}

	fortune, saveFailed := s.persist(ctx, input.UserID, model.FortuneHoroscope,
		fmt.Sprintf("Günlük %s Yorumu", sign), interpretation,
		model.HoroscopeData{
			ZodiacSign: sign,
			Date:       time.Now().Format("2006-01-02"),
		})

	return &GenerationResult{
		Interpretation: interpretation,
		Fortune:        fortune,
		SaveFailed:     saveFailed,
	}, nil
}

// InterpretDreamInput defines input for a dream interpretation.
type InterpretDreamInput struct {
	Description string
	Emotion     string
	UserID      string
}

// InterpretDream validates the narrative, generates an analysis and persists
// the result when a user id was supplied. Emotion is optional.
func (s *FortuneService) InterpretDream(ctx context.Context, input InterpretDreamInput) (*GenerationResult, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrDescriptionMissing
	}
	emotion := strings.TrimSpace(input.Emotion)

	interpretation, err := s.generate(ctx, model.FortuneDream, func() (string, error) {
		return s.generator.InterpretDream(ctx, description, emotion)
	})
	if err != nil {
		return nil, err
	}

	fortune, saveFailed := s.persist(ctx, input.UserID, model.FortuneDream, "Rüya Tabiri", interpretation,
		model.DreamData{
			DreamDescription: description,
			Emotion:          emotion,
		})

	return &GenerationResult{
		Interpretation: interpretation,
		Fortune:        fortune,
		SaveFailed:     saveFailed,
	}, nil
}

// ListFortunesInput defines filters for listing fortunes.
type ListFortunesInput struct {
	UserID string
	Type   string // one of the four types, "all" or empty
}

// ListFortunes returns fortunes newest first, optionally filtered by user
// and type. The type filter never returns records of other types.
func (s *FortuneService) ListFortunes(ctx context.Context, input ListFortunesInput) ([]*model.Fortune, error) {
	typ := strings.TrimSpace(input.Type)
	if typ != "" && typ != "all" && !model.FortuneType(typ).IsValid() {
		return nil, ErrInvalidTypeFilter
	}

	fortunes, err := s.store.GetFortunes(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fortunes: %w", err)
	}

	if typ == "" || typ == "all" {
		if fortunes == nil {
			fortunes = []*model.Fortune{}
		}
		return fortunes, nil
	}

	filtered := make([]*model.Fortune, 0, len(fortunes))
	for _, f := range fortunes {
		if f.Type == model.FortuneType(typ) {
			filtered = append(filtered, f)
		}
	}
	return filtered, nil
}

// GetFortune retrieves one fortune by id.
func (s *FortuneService) GetFortune(ctx context.Context, id string) (*model.Fortune, error) {
	fortune, err := s.store.GetFortune(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrFortuneNotFound) {
			return nil, ErrFortuneNotFound
		}
		return nil, fmt.Errorf("failed to get fortune: %w", err)
	}
	return fortune, nil
}

// DeleteFortune removes one fortune by id. Deleting a missing or already
// deleted id returns ErrFortuneNotFound and has no side effects.
func (s *FortuneService) DeleteFortune(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteFortune(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete fortune: %w", err)
	}
	if !deleted {
		return ErrFortuneNotFound
	}

	s.metrics.IncFortuneDeleted()
	return nil
}

// generate runs one provider call with metrics around it.
func (s *FortuneService) generate(ctx context.Context, typ model.FortuneType, call func() (string, error)) (string, error) {
	start := time.Now()
	interpretation, err := call()
	s.metrics.ObserveGenerationDuration(typ, time.Since(start))

	if err != nil {
		s.metrics.IncGenerationFailed(typ)
		s.logger.ErrorContext(ctx, "generation failed",
			slog.String("type", string(typ)),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	s.metrics.IncGenerated(typ)
	return interpretation, nil
}

// persist stores a generated fortune. Persistence is attempted only when the
// caller supplied a user id; without one the record is intentionally skipped.
// The second return value reports a persistence failure after successful
// generation.
func (s *FortuneService) persist(ctx context.Context, userID string, typ model.FortuneType, title, content string, payload any) (*model.Fortune, bool) {
	if userID == "" {
		return nil, false
	}

	data, err := model.EncodeData(payload)
	if err == nil {
		var fortune *model.Fortune
		fortune, err = s.store.CreateFortune(ctx, storage.CreateFortuneInput{
			UserID:  userID,
			Type:    typ,
			Title:   title,
			Content: content,
			Data:    data,
		})
		if err == nil {
			s.metrics.IncFortuneSaved()
			return fortune, false
		}
	}

	s.metrics.IncFortuneSaveFailed()
	s.logger.ErrorContext(ctx, "fortune generated but not saved",
		slog.String("type", string(typ)),
		slog.String("user_id", userID),
		slog.String("error", err.Error()),
	)
	return nil, true
}

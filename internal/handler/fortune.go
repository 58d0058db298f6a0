package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/falci/falci/internal/handler/dto"
	"github.com/falci/falci/internal/service"
)

// saveWarning is returned alongside a successful interpretation when the
// record could not be persisted afterwards.
const saveWarning = "Falınız oluşturuldu ancak kaydedilemedi"

// FortuneHandler handles HTTP requests for the fortune history.
type FortuneHandler struct {
	svc    *service.FortuneService
	logger *slog.Logger
}

// NewFortuneHandler creates a new FortuneHandler.
func NewFortuneHandler(svc *service.FortuneService, logger *slog.Logger) *FortuneHandler {
	return &FortuneHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/fortunes.
func (h *FortuneHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fortunes, err := h.svc.ListFortunes(r.Context(), service.ListFortunesInput{
		UserID: query.Get("userId"),
		Type:   query.Get("type"),
	})
	if err != nil {
		handleFortuneError(w, h.logger, err, "")
		return
	}

	writeJSON(w, http.StatusOK, dto.FortuneListResponse{Fortunes: fortunes})
}

// Get handles GET /api/fortunes/{id}.
func (h *FortuneHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Fal kimliği gereklidir")
		return
	}

	fortune, err := h.svc.GetFortune(r.Context(), id)
	if err != nil {
		handleFortuneError(w, h.logger, err, "")
		return
	}

	writeJSON(w, http.StatusOK, dto.FortuneResponse{Fortune: fortune})
}

// Delete handles DELETE /api/fortunes/{id}.
func (h *FortuneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Fal kimliği gereklidir")
		return
	}

	if err := h.svc.DeleteFortune(r.Context(), id); err != nil {
		handleFortuneError(w, h.logger, err, "")
		return
	}

	h.logger.Info("fortune_deleted", "fortune_id", id)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Fal silindi"})
}

// handleFortuneError maps fortune service errors to HTTP responses.
// generationMessage replaces the generic text when generation itself failed,
// so each reading type reports its own Turkish failure message.
func handleFortuneError(w http.ResponseWriter, logger *slog.Logger, err error, generationMessage string) {
	switch {
	case errors.Is(err, service.ErrCardCount):
		writeError(w, http.StatusBadRequest, "CARD_COUNT", "3 kart seçilmelidir")
	case errors.Is(err, service.ErrImageMissing):
		writeError(w, http.StatusBadRequest, "IMAGE_MISSING", "Fotoğraf yüklenmedi")
	case errors.Is(err, service.ErrImageTooLarge):
		writeError(w, http.StatusBadRequest, "IMAGE_TOO_LARGE", "Fotoğraf 5MB sınırını aşıyor")
	case errors.Is(err, service.ErrSignMissing):
		writeError(w, http.StatusBadRequest, "SIGN_MISSING", "Burç seçilmelidir")
	case errors.Is(err, service.ErrDescriptionMissing):
		writeError(w, http.StatusBadRequest, "DESCRIPTION_MISSING", "Rüya açıklaması girilmelidir")
	case errors.Is(err, service.ErrInvalidTypeFilter):
		writeError(w, http.StatusBadRequest, "INVALID_TYPE", "Geçersiz fal türü")
	case errors.Is(err, service.ErrFortuneNotFound):
		writeError(w, http.StatusNotFound, "FORTUNE_NOT_FOUND", "Fal bulunamadı")
	case errors.Is(err, service.ErrGeneration):
		if generationMessage == "" {
			generationMessage = "Yorum oluşturulamadı"
		}
		writeError(w, http.StatusInternalServerError, "GENERATION_FAILED", generationMessage)
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Beklenmeyen bir hata oluştu")
	}
}

// resultMeta extracts the persistence outcome fields shared by all
// generation responses.
func resultMeta(result *service.GenerationResult) (fortuneID string, saved bool, warning string) {
	if result.Fortune != nil {
		return result.Fortune.ID, true, ""
	}
	if result.SaveFailed {
		return "", false, saveWarning
	}
	return "", false, ""
}

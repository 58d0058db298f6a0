package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/falci/falci/internal/handler/dto"
	"github.com/falci/falci/internal/service"
)

// DreamHandler handles HTTP requests for dream interpretations.
type DreamHandler struct {
	svc    *service.FortuneService
	logger *slog.Logger
}

// NewDreamHandler creates a new DreamHandler.
func NewDreamHandler(svc *service.FortuneService, logger *slog.Logger) *DreamHandler {
	return &DreamHandler{
		svc:    svc,
		logger: logger,
	}
}

// Interpret handles POST /api/dreams/interpret.
func (h *DreamHandler) Interpret(w http.ResponseWriter, r *http.Request) {
	var req dto.InterpretDreamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Geçersiz istek gövdesi")
		return
	}

	result, err := h.svc.InterpretDream(r.Context(), service.InterpretDreamInput{
		Description: req.DreamDescription,
		Emotion:     req.Emotion,
		UserID:      req.UserID,
	})
	if err != nil {
		handleFortuneError(w, h.logger, err, "Rüya tabiri oluşturulamadı")
		return
	}

	fortuneID, saved, warning := resultMeta(result)

	h.logger.Info("dream_interpreted",
		"has_emotion", req.Emotion != "",
		"saved", saved,
	)

	writeJSON(w, http.StatusOK, dto.InterpretDreamResponse{
		Interpretation: result.Interpretation,
		FortuneID:      fortuneID,
		Saved:          saved,
		Warning:        warning,
	})
}

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/falci/falci/internal/handler/dto"
	"github.com/falci/falci/internal/model"
	"github.com/falci/falci/internal/service"
)

// TarotHandler handles HTTP requests for tarot readings.
type TarotHandler struct {
	svc    *service.FortuneService
	logger *slog.Logger
}

// NewTarotHandler creates a new TarotHandler.
func NewTarotHandler(svc *service.FortuneService, logger *slog.Logger) *TarotHandler {
	return &TarotHandler{
		svc:    svc,
		logger: logger,
	}
}

// Cards handles GET /api/tarot/cards.
func (h *TarotHandler) Cards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.CardsResponse{Cards: model.TarotDeck})
}

// RandomCards handles GET /api/tarot/cards/random.
func (h *TarotHandler) RandomCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.CardsResponse{Cards: model.DrawCards(model.SpreadSize)})
}

// Interpret handles POST /api/tarot/interpret.
func (h *TarotHandler) Interpret(w http.ResponseWriter, r *http.Request) {
	var req dto.InterpretTarotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Geçersiz istek gövdesi")
		return
	}

	result, err := h.svc.InterpretTarot(r.Context(), service.InterpretTarotInput{
		Cards:  req.Cards,
		UserID: req.UserID,
	})
	if err != nil {
		handleFortuneError(w, h.logger, err, "Tarot yorumu oluşturulamadı")
		return
	}

	fortuneID, saved, warning := resultMeta(result)

	h.logger.Info("tarot_interpreted",
		"cards", req.Cards,
		"saved", saved,
	)

	writeJSON(w, http.StatusOK, dto.InterpretTarotResponse{
		Interpretation: result.Interpretation,
		Cards:          req.Cards,
		FortuneID:      fortuneID,
		Saved:          saved,
		Warning:        warning,
	})
}

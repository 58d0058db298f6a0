package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/falci/falci/internal/handler/dto"
	"github.com/falci/falci/internal/model"
	"github.com/falci/falci/internal/service"
)

// HoroscopeHandler handles HTTP requests for daily horoscopes.
type HoroscopeHandler struct {
	svc    *service.FortuneService
	logger *slog.Logger
}

// NewHoroscopeHandler creates a new HoroscopeHandler.
func NewHoroscopeHandler(svc *service.FortuneService, logger *slog.Logger) *HoroscopeHandler {
	return &HoroscopeHandler{
		svc:    svc,
		logger: logger,
	}
}

// Signs handles GET /api/horoscope/signs.
func (h *HoroscopeHandler) Signs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.SignsResponse{Signs: model.ZodiacSigns})
}

// Daily handles POST /api/horoscope/daily.
func (h *HoroscopeHandler) Daily(w http.ResponseWriter, r *http.Request) {
	var req dto.DailyHoroscopeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Geçersiz istek gövdesi")
		return
	}

	result, err := h.svc.DailyHoroscope(r.Context(), service.DailyHoroscopeInput{
		ZodiacSign: req.ZodiacSign,
		UserID:     req.UserID,
	})
	if err != nil {
		handleFortuneError(w, h.logger, err, "Burç yorumu oluşturulamadı")
		return
	}

	fortuneID, saved, warning := resultMeta(result)

	h.logger.Info("horoscope_generated",
		"zodiac_sign", req.ZodiacSign,
		"saved", saved,
	)

	writeJSON(w, http.StatusOK, dto.DailyHoroscopeResponse{
		Interpretation: result.Interpretation,
		ZodiacSign:     req.ZodiacSign,
		FortuneID:      fortuneID,
		Saved:          saved,
		Warning:        warning,
	})
}

package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/falci/falci/internal/handler/dto"
	"github.com/falci/falci/internal/service"
)

// multipartOverhead leaves room for multipart boundaries and form fields
// around an image at the size ceiling.
const multipartOverhead = 1 << 20

// CoffeeHandler handles HTTP requests for coffee-cup readings.
type CoffeeHandler struct {
	svc    *service.FortuneService
	logger *slog.Logger
}

// NewCoffeeHandler creates a new CoffeeHandler.
func NewCoffeeHandler(svc *service.FortuneService, logger *slog.Logger) *CoffeeHandler {
	return &CoffeeHandler{
		svc:    svc,
		logger: logger,
	}
}

// Analyze handles POST /api/coffee/analyze. The cup photo arrives as multipart
// form data under the "image" field.
func (h *CoffeeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxImageBytes+multipartOverhead)

	if err := r.ParseMultipartForm(service.MaxImageBytes + multipartOverhead); err != nil {
		writeError(w, http.StatusBadRequest, "IMAGE_TOO_LARGE", "Fotoğraf 5MB sınırını aşıyor")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "IMAGE_MISSING", "Fotoğraf yüklenmedi")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "IMAGE_UNREADABLE", "Fotoğraf okunamadı")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}

	result, err := h.svc.AnalyzeCoffee(r.Context(), service.AnalyzeCoffeeInput{
		Image:    image,
		MimeType: mimeType,
		UserID:   r.FormValue("userId"),
	})
	if err != nil {
		handleFortuneError(w, h.logger, err, "Kahve falı yorumu oluşturulamadı")
		return
	}

	fortuneID, saved, warning := resultMeta(result)

	h.logger.Info("coffee_analyzed",
		"image_size", len(image),
		"image_type", mimeType,
		"saved", saved,
	)

	writeJSON(w, http.StatusOK, dto.AnalyzeCoffeeResponse{
		Interpretation: result.Interpretation,
		FortuneID:      fortuneID,
		Saved:          saved,
		Warning:        warning,
	})
}

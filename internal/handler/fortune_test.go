package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/falci/falci/internal/handler/dto"
	"github.com/falci/falci/internal/model"
)

// seedFortunes generates one tarot and one dream reading for the given user.
func seedFortunes(t *testing.T, router http.Handler, userID string) []string {
	t.Helper()

	bodies := []string{
		`{"cards":["Güneş","Ay","Yıldız"],"userId":"` + userID + `"}`,
	}
	var ids []string
	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPost, "/api/tarot/interpret", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("seed tarot failed with status %d", rec.Code)
		}
		var resp dto.InterpretTarotResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode seed response: %v", err)
		}
		ids = append(ids, resp.FortuneID)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/dreams/interpret",
		strings.NewReader(`{"dreamDescription":"Bir rüya","userId":"`+userID+`"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("seed dream failed with status %d", rec.Code)
	}
	var resp dto.InterpretDreamResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode seed response: %v", err)
	}
	ids = append(ids, resp.FortuneID)

	return ids
}

func TestFortuneHandler_List(t *testing.T) {
	router, _ := newTestRouter(&stubGenerator{text: "yorum"})
	seedFortunes(t, router, "u1")

	req := httptest.NewRequest(http.MethodGet, "/api/fortunes?userId=u1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp dto.FortuneListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Fortunes) != 2 {
		t.Fatalf("expected 2 fortunes, got %d", len(resp.Fortunes))
	}
	// Newest first: the dream was created last.
	if resp.Fortunes[0].Type != model.FortuneDream {
		t.Errorf("expected newest fortune first, got %s", resp.Fortunes[0].Type)
	}
}

func TestFortuneHandler_List_TypeFilter(t *testing.T) {
	router, _ := newTestRouter(&stubGenerator{text: "yorum"})
	seedFortunes(t, router, "u1")

	req := httptest.NewRequest(http.MethodGet, "/api/fortunes?userId=u1&type=tarot", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp dto.FortuneListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Fortunes) != 1 {
		t.Fatalf("expected 1 tarot fortune, got %d", len(resp.Fortunes))
	}
	if resp.Fortunes[0].Type != model.FortuneTarot {
		t.Errorf("filter leaked type %s", resp.Fortunes[0].Type)
	}
}

func TestFortuneHandler_List_InvalidType(t *testing.T) {
	router, _ := newTestRouter(&stubGenerator{text: "yorum"})

	req := httptest.NewRequest(http.MethodGet, "/api/fortunes?type=palm", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "INVALID_TYPE" {
		t.Errorf("unexpected error code: %s", resp.Code)
	}
}

func TestFortuneHandler_List_Empty(t *testing.T) {
	router, _ := newTestRouter(&stubGenerator{text: "yorum"})

	req := httptest.NewRequest(http.MethodGet, "/api/fortunes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"fortunes":[]`) {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

func TestFortuneHandler_Get(t *testing.T) {
	router, _ := newTestRouter(&stubGenerator{text: "yorum"})
	ids := seedFortunes(t, router, "u1")

	req := httptest.NewRequest(http.MethodGet, "/api/fortunes/"+ids[0], nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp dto.FortuneResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Fortune == nil || resp.Fortune.ID != ids[0] {
		t.Errorf("expected fortune %s, got %+v", ids[0], resp.Fortune)
	}
}

func TestFortuneHandler_Get_NotFound(t *testing.T) {
	router, _ := newTestRouter(&stubGenerator{text: "yorum"})

	req := httptest.NewRequest(http.MethodGet, "/api/fortunes/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "FORTUNE_NOT_FOUND" {
		t.Errorf("unexpected error code: %s", resp.Code)
	}
}

func TestFortuneHandler_Delete(t *testing.T) {
	router, _ := newTestRouter(&stubGenerator{text: "yorum"})
	ids := seedFortunes(t, router, "u1")

	req := httptest.NewRequest(http.MethodDelete, "/api/fortunes/"+ids[0], nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp dto.MessageResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Fal silindi" {
		t.Errorf("unexpected message: %s", resp.Message)
	}

	// Deleting again reports not found.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/fortunes/"+ids[0], nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 on second delete, got %d", rec.Code)
	}
}

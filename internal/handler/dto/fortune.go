// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/falci/falci/internal/model"

// InterpretTarotRequest represents the request body for a tarot reading.
type InterpretTarotRequest struct {
	Cards  []string `json:"cards"`
	UserID string   `json:"userId,omitempty"`
}

// InterpretTarotResponse echoes the selected cards unchanged, in order.
type InterpretTarotResponse struct {
	Interpretation string   `json:"interpretation"`
	Cards          []string `json:"cards"`
	FortuneID      string   `json:"fortuneId,omitempty"`
	Saved          bool     `json:"saved"`
	Warning        string   `json:"warning,omitempty"`
}

// CardsResponse lists tarot cards.
type CardsResponse struct {
	Cards []string `json:"cards"`
}

// AnalyzeCoffeeResponse represents a coffee-cup analysis result.
type AnalyzeCoffeeResponse struct {
	Interpretation string `json:"interpretation"`
	FortuneID      string `json:"fortuneId,omitempty"`
	Saved          bool   `json:"saved"`
	Warning        string `json:"warning,omitempty"`
}

// SignsResponse lists the zodiac signs for the picker.
type SignsResponse struct {
	Signs []model.ZodiacSign `json:"signs"`
}

// DailyHoroscopeRequest represents the request body for a daily horoscope.
type DailyHoroscopeRequest struct {
	ZodiacSign string `json:"zodiacSign"`
	UserID     string `json:"userId,omitempty"`
}

// DailyHoroscopeResponse represents a daily horoscope result.
type DailyHoroscopeResponse struct {
	Interpretation string `json:"interpretation"`
	ZodiacSign     string `json:"zodiacSign"`
	FortuneID      string `json:"fortuneId,omitempty"`
	Saved          bool   `json:"saved"`
	Warning        string `json:"warning,omitempty"`
}

// InterpretDreamRequest represents the request body for a dream interpretation.
type InterpretDreamRequest struct {
	DreamDescription string `json:"dreamDescription"`
	Emotion          string `json:"emotion,omitempty"`
	UserID           string `json:"userId,omitempty"`
}

// InterpretDreamResponse represents a dream interpretation result.
type InterpretDreamResponse struct {
	Interpretation string `json:"interpretation"`
	FortuneID      string `json:"fortuneId,omitempty"`
	Saved          bool   `json:"saved"`
	Warning        string `json:"warning,omitempty"`
}

// FortuneListResponse wraps the history listing.
type FortuneListResponse struct {
	Fortunes []*model.Fortune `json:"fortunes"`
}

// FortuneResponse wraps a single fortune.
type FortuneResponse struct {
	Fortune *model.Fortune `json:"fortune"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateUserRequest represents the request body for registering a user.
type CreateUserRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	ZodiacSign string `json:"zodiacSign,omitempty"`
}

// LoginRequest represents the request body for verifying credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse wraps a user record. The password hash is never serialized.
type UserResponse struct {
	User *model.User `json:"user"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

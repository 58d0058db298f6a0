// Package model defines domain entities for the application.
package model

import (
	"encoding/json"
	"time"
)

// FortuneType identifies which reading flow produced a fortune.
type FortuneType string

const (
	FortuneTarot     FortuneType = "tarot"
	FortuneCoffee    FortuneType = "coffee"
	FortuneHoroscope FortuneType = "horoscope"
	FortuneDream     FortuneType = "dream"
)

// IsValid checks if the fortune type is one of the four known readings.
func (t FortuneType) IsValid() bool {
	switch t {
	case FortuneTarot, FortuneCoffee, FortuneHoroscope, FortuneDream:
		return true
	}
	return false
}

// Fortune represents one persisted interpretation result.
// Fortunes are immutable after creation; CreatedAt is the sole sort key.
type Fortune struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId,omitempty"`
	Type      FortuneType     `json:"type"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TarotData is the origin-specific payload of a tarot fortune.
type TarotData struct {
	Cards []string `json:"cards"`
}

// CoffeeData is the origin-specific payload of a coffee fortune.
// ImageURL is set only when the uploaded cup photo was archived.
type CoffeeData struct {
	ImageSize int64  `json:"imageSize"`
	ImageType string `json:"imageType"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// HoroscopeData is the origin-specific payload of a daily horoscope.
type HoroscopeData struct {
	ZodiacSign string `json:"zodiacSign"`
	Date       string `json:"date"`
}

// DreamData is the origin-specific payload of a dream interpretation.
type DreamData struct {
	DreamDescription string `json:"dreamDescription"`
	Emotion          string `json:"emotion,omitempty"`
}

// EncodeData marshals an origin-specific payload for storage on a Fortune.
func EncodeData(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

package model

import (
	"math/rand/v2"
	"slices"
)

// SpreadSize is the number of cards in a reading: past, present, future.
const SpreadSize = 3

// TarotDeck is the fixed deck offered for selection.
var TarotDeck = []string{
	"Budala", "Büyücü", "Yüksek Rahibe", "İmparatoriçe", "İmparator",
	"Hierophant", "Aşıklar", "Araba", "Güç", "Ermit", "Kader Çarkı",
	"Adalet", "Asılan Adam", "Ölüm", "Ölçülülük", "Şeytan", "Kule",
	"Yıldız", "Ay", "Güneş",
}

// DrawCards returns n distinct cards from the deck in random order.
func DrawCards(n int) []string {
	if n > len(TarotDeck) {
		n = len(TarotDeck)
	}
	deck := slices.Clone(TarotDeck)
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck[:n]
}

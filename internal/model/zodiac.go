package model

// ZodiacSign describes one entry of the sign picker.
type ZodiacSign struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Dates  string `json:"dates"`
}

// ZodiacSigns lists the twelve signs with their display date ranges.
var ZodiacSigns = []ZodiacSign{
	{Name: "Koç", Symbol: "♈", Dates: "21 Mart - 20 Nisan"},
	{Name: "Boğa", Symbol: "♉", Dates: "21 Nisan - 21 Mayıs"},
	{Name: "İkizler", Symbol: "♊", Dates: "22 Mayıs - 21 Haziran"},
	{Name: "Yengeç", Symbol: "♋", Dates: "22 Haziran - 22 Temmuz"},
	{Name: "Aslan", Symbol: "♌", Dates: "23 Temmuz - 23 Ağustos"},
	{Name: "Başak", Symbol: "♍", Dates: "24 Ağustos - 23 Eylül"},
	{Name: "Terazi", Symbol: "♎", Dates: "24 Eylül - 23 Ekim"},
	{Name: "Akrep", Symbol: "♏", Dates: "24 Ekim - 22 Kasım"},
	{Name: "Yay", Symbol: "♐", Dates: "23 Kasım - 21 Aralık"},
	{Name: "Oğlak", Symbol: "♑", Dates: "22 Aralık - 20 Ocak"},
	{Name: "Kova", Symbol: "♒", Dates: "21 Ocak - 19 Şubat"},
	{Name: "Balık", Symbol: "♓", Dates: "20 Şubat - 20 Mart"},
}

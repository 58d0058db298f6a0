package gemini

import (
	"fmt"
	"strings"
)

// Prompt templates are Turkish because the product surface is Turkish.
// Each template embeds only caller-supplied values; no system/user split is
// needed for generateContent.

func tarotPrompt(cards []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Sen mistik bir tarot yorumcususun. Kullanıcının seçtiği kartlar şunlar: %s.\n\n", strings.Join(cards, ", "))
	b.WriteString("Bu üç kartın birleşimini dikkate alarak:\n")
	fmt.Fprintf(&b, "1. Geçmiş (1. kart): %s\n", cards[0])
	fmt.Fprintf(&b, "2. Şimdi (2. kart): %s\n", cards[1])
	fmt.Fprintf(&b, "3. Gelecek (3. kart): %s\n\n", cards[2])
	b.WriteString("Kullanıcının geçmişi, şimdiki durumu ve geleceği hakkında derin, bütüncül ve her seferinde özgün bir yorum yap.\n")
	b.WriteString("Yorumun umut verici ama gerçekçi olsun. Her kart için ayrı ayrı yorum yap, sonra genel bir değerlendirme ver.\n")
	b.WriteString("Cevabını Türkçe ver ve samimi bir dille yaz.")

	return b.String()
}

const coffeePrompt = `Sen çok tecrübeli bir kahve falı yorumcususun. Sana yüklenen kahve fincanı fotoğrafındaki sembolleri, şekilleri ve yolları dikkatlice analiz et.

Lütfen şu formatta yanıt ver:
1. TESPIT EDİLEN SEMBOLLER: Gördüğün sembolleri listele (örneğin: kuş, anahtar, dağ, yol, vs.)
2. FAL YORUMU: Bu sembollerin birleşimine dayanarak kullanıcının aşk, iş ve para durumu hakkında detaylı, kişisel ve özgün bir fal yorumu yap.

Yorumun pozitif ama gerçekçi olsun. Cevabını Türkçe ver.`

func horoscopePrompt(zodiacSign, date string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Sen uzman bir astrolog ve burç yorumcususun. %s burcu için %s tarihli günlük burç yorumu hazırla.\n\n", zodiacSign, date)
	b.WriteString("Lütfen şu konuları içeren bir yorum yaz:\n")
	b.WriteString("1. GENEL: Günün genel enerjisi ve yaklaşım\n")
	b.WriteString("2. AŞK: İlişkiler ve romantik hayat\n")
	b.WriteString("3. KARİYER: İş ve para durumu\n")
	b.WriteString("4. SAĞLIK: Fiziksel ve mental sağlık\n\n")
	b.WriteString("Her bölüm için 2-3 cümlelik öğüt ver. Yorumun motivasyonel ama gerçekçi olsun.\n")
	b.WriteString("Sonunda günün şanslı sayısını (1-9 arası) belirt.\n")
	b.WriteString("Cevabını Türkçe ver.")

	return b.String()
}

func dreamPrompt(description, emotion string) string {
	var b strings.Builder

	b.WriteString("Sen uzman bir rüya tabirci ve psikologsun. Kullanıcının anlattığı rüyayı analiz et:\n\n")
	fmt.Fprintf(&b, "RÜYA: %s\n", description)
	if emotion != "" {
		fmt.Fprintf(&b, "DUYGU: %s\n", emotion)
	}
	b.WriteString("\nLütfen şu formatta yanıt ver:\n")
	b.WriteString("1. RÜYANIN ANA TEMALARI: Önemli sembolleri ve temalarını listele\n")
	b.WriteString("2. PSİKOLOJİK YORUMU: Rüyanın psikolojik anlamını açıkla\n")
	b.WriteString("3. MİSTİK ANLAM: Rüyanın manevi ve sembolik anlamını değerlendir\n")
	b.WriteString("4. TAVSİYELER: Bu rüyadan çıkarılacak dersler ve öneriler\n\n")
	b.WriteString("Yorumun destekleyici ve içgörü verici olsun. Cevabını Türkçe ver.")

	return b.String()
}

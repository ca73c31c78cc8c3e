package tarjama

import "testing"

func TestTransliterate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mohammed", "موحامميد"},
		{"Khalid", "خاليد"},
		{"Schmidt", "شميدت"},
		{"Charles", "تشارليس"},
		{"Sasha", "ساشا"},
		{"Thomas", "ثوماس"},
		{"Philip", "فيليب"},
		{"Max", "ماكس"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Transliterate(tt.in); got != tt.want {
				t.Errorf("Transliterate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransliterate_CaseInsensitive(t *testing.T) {
	if Transliterate("KHALID") != Transliterate("khalid") {
		t.Error("transliteration should ignore case")
	}
}

func TestTransliterate_KeepsUnmapped(t *testing.T) {
	got := Transliterate("Ali 42, Co.")
	want := "الي 42, كو."
	if got != want {
		t.Errorf("Transliterate() = %q, want %q", got, want)
	}
}

func TestTransliterate_ProducesArabic(t *testing.T) {
	for _, name := range []string{"Zaid", "Quentin", "Jun"} {
		if !HasArabic(Transliterate(name)) {
			t.Errorf("Transliterate(%q) should contain Arabic", name)
		}
	}
	if HasArabic(Transliterate("2024 - 2025")) {
		t.Error("text without Latin letters stays non-Arabic")
	}
}

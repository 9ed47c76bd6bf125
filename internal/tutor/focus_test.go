package tutor

import "testing"

func TestDetectFocus(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Focus
	}{
		{"greeting", "Hola, ¿cómo estás?", FocusGeneral},
		{"small talk", "Me gusta la playa y el sol", FocusGeneral},
		{"subjunctive question", "no entiendo cuándo usar el subjuntivo", FocusGrammar},
		{"accentless keyword", "tengo dudas de gramatica", FocusGrammar},
		{"keyword inside word", "quiero practicar los ejercicios", FocusGrammar},
		{"uppercase input", "AYUDA CON MI ENSAYO", FocusGrammar},
		{"correction request", "¿puedes corregir mi frase?", FocusGrammar},
		{"english general", "tell me about Madrid", FocusGeneral},
		{"empty", "", FocusGeneral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectFocus(tc.text); got != tc.want {
				t.Fatalf("DetectFocus(%q) = %s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

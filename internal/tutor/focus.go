package tutor

import "strings"

// Focus classifies a student request as general-purpose or grammar/writing
// improvement oriented. Request-scoped; never persisted.
type Focus string

const (
	FocusGeneral Focus = "GENERAL"
	FocusGrammar Focus = "GRAMMAR_OR_IMPROVEMENT"
)

// focusKeywords are the grammar/writing/improvement terms (in the
// instructional language) whose presence marks a request as FocusGrammar.
var focusKeywords = []string{
	"gramática", "gramatica", "tiempo verbal", "ser", "estar", "pretérito",
	"preterito", "imperfecto", "subjuntivo", "condicional", "pasiva",
	"vocabulario", "palabra", "escribir", "redacción", "redaccion",
	"ensayo", "texto", "frase", "oración", "oracion",
	"corregir", "corrección", "correccion", "mejorar",
	"tarea", "deberes", "composición", "composicion",
	"practicar", "ejercicio", "ejercicios",
}

// DetectFocus is a pure substring membership test over the lower-cased
// text. First match short-circuits; no keyword present means FocusGeneral.
func DetectFocus(userText string) Focus {
	t := strings.ToLower(userText)
	for _, kw := range focusKeywords {
		if strings.Contains(t, kw) {
			return FocusGrammar
		}
	}
	return FocusGeneral
}

package tutor

import (
	"fmt"

	"marvel-tutor/internal/domain/model"
	"marvel-tutor/internal/domain/ports/adapter"
)

const userPromptTemplate = `
Nivel del estudiante: %s.
Tipo de consulta: %s.
Mensaje del estudiante (puede estar en inglés o español):
"""%s"""


INSTRUCCIONES PARA TI, MARVEL:

1. Primero, analiza mentalmente si el mensaje corresponde al nivel indicado
   (A1, A2, B1 o B2), especialmente en sintaxis y tiempos verbales.
   NO describas este análisis en voz alta.

2. Si el nivel es B1 o B2 y el mensaje tiene muchos errores de gramática/sintaxis
   o está casi todo en inglés:
   - Pide al estudiante que reescriba la idea en español con mejor forma,
     sin darle tú la frase corregida.
   - Ofrece solo pistas o preguntas (“¿acción terminada o habitual?”,
     “¿qué verbo iría mejor aquí?”).

3. Si el nivel es A1 o A2:
   - Acepta muchos errores, céntrate en entender la idea.
   - Puedes señalar UN aspecto sencillo, pero no pidas reescrituras largas
     salvo que el mensaje sea incomprensible.

4. Sobre las MICRO-METAS:
   - Si Tipo de consulta = GRAMMAR_OR_IMPROVEMENT:
       • Puedes proponer una micro-meta pequeña y concreta
         (escribir 2–3 frases, revisar un punto gramatical, etc.).
   - Si Tipo de consulta = GENERAL:
       • NO propongas micro-metas ni tareas de escritura.

5. Responde SOLO en español, máximo 150 palabras.
   Organiza en párrafos cortos o viñetas.
`

// BuildUserPrompt embeds the level, the focus label, the verbatim student
// text and the fixed meta-instruction block into the turn's user message.
func BuildUserPrompt(userText string, level model.Level, focus Focus) string {
	return fmt.Sprintf(userPromptTemplate, level, focus, userText)
}

// ComposeMessages produces the ordered sequence handed to the completion
// service: the instruction document, the rolling history in original order,
// then the newly built user message.
func ComposeMessages(userText string, level model.Level, focus Focus, history []model.Turn) []adapter.Message {
	messages := make([]adapter.Message, 0, len(history)+2)
	messages = append(messages, adapter.Message{Role: string(model.RoleSystem), Content: SystemPrompt})
	for _, t := range history {
		messages = append(messages, adapter.Message{Role: string(t.Role), Content: t.Content})
	}
	messages = append(messages, adapter.Message{
		Role:    string(model.RoleUser),
		Content: BuildUserPrompt(userText, level, focus),
	})
	return messages
}

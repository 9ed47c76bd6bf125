package tutor

import (
	"strings"
	"testing"

	"marvel-tutor/internal/domain/model"
)

func TestBuildUserPrompt(t *testing.T) {
	got := BuildUserPrompt("¿Cuándo uso el subjuntivo?", model.LevelB1, FocusGrammar)

	for _, want := range []string{
		"Nivel del estudiante: B1.",
		"Tipo de consulta: GRAMMAR_OR_IMPROVEMENT.",
		`"""¿Cuándo uso el subjuntivo?"""`,
		"máximo 150 palabras",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestComposeMessages(t *testing.T) {
	history := []model.Turn{
		{Role: model.RoleUser, Content: "hola"},
		{Role: model.RoleAssistant, Content: "¡Hola! ¿Qué tal?"},
	}
	msgs := ComposeMessages("cuéntame de Sevilla", model.LevelA2, FocusGeneral, history)

	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 4", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[0].Content != SystemPrompt {
		t.Fatalf("first message is not the instruction document")
	}
	if msgs[1].Role != "user" || msgs[1].Content != "hola" {
		t.Fatalf("history not carried in order: %+v", msgs[1])
	}
	if msgs[2].Role != "assistant" {
		t.Fatalf("history roles not preserved: %+v", msgs[2])
	}
	last := msgs[len(msgs)-1]
	if last.Role != "user" || !strings.Contains(last.Content, "cuéntame de Sevilla") {
		t.Fatalf("final message does not embed the student text")
	}
	if !strings.Contains(last.Content, "Tipo de consulta: GENERAL.") {
		t.Fatalf("final message does not carry the focus label")
	}
}

func TestComposeMessagesEmptyHistory(t *testing.T) {
	msgs := ComposeMessages("hola", model.DefaultLevel, FocusGeneral, nil)
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
}

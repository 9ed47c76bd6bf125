package model

import "strings"

// Level is the CEFR-style proficiency tag driving response strictness.
// It is request-scoped and never persisted.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
)

// DefaultLevel is applied when the request carries no level.
const DefaultLevel = LevelA2

// ParseLevel normalizes the request value. Unrecognized levels are passed
// through uninterpreted; the model sees whatever the client sent.
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLevel
	}
	return Level(s)
}

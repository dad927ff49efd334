// Package soreness defines the closed set of muscle groups and soreness
// levels, with each level's severity rank and recommendation kept in a
// fixed table.
package soreness

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMuscleGroup = errors.New("unknown muscle group")
	ErrUnknownLevel       = errors.New("unknown soreness level")
)

// MuscleGroup identifies a trainable muscle group. The zero value is not a
// member.
type MuscleGroup uint8

const (
	Chest MuscleGroup = iota + 1
	Back
	Legs
	Arms
	Shoulders
	Core
)

var muscleGroupNames = [...]string{
	Chest:     "CHEST",
	Back:      "BACK",
	Legs:      "LEGS",
	Arms:      "ARMS",
	Shoulders: "SHOULDERS",
	Core:      "CORE",
}

// AllMuscleGroups returns every muscle group in declaration order.
func AllMuscleGroups() []MuscleGroup {
	return []MuscleGroup{Chest, Back, Legs, Arms, Shoulders, Core}
}

func (g MuscleGroup) Valid() bool {
	return g >= Chest && g <= Core
}

func (g MuscleGroup) String() string {
	if !g.Valid() {
		return fmt.Sprintf("MuscleGroup(%d)", uint8(g))
	}
	return muscleGroupNames[g]
}

// ParseMuscleGroup accepts names like "CHEST", "chest" or "Chest".
func ParseMuscleGroup(s string) (MuscleGroup, error) {
	name := normalize(s)
	for _, g := range AllMuscleGroups() {
		if muscleGroupNames[g] == name {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMuscleGroup, s)
}

func (g MuscleGroup) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMuscleGroup, uint8(g))
	}
	return []byte(g.String()), nil
}

func (g *MuscleGroup) UnmarshalText(text []byte) error {
	parsed, err := ParseMuscleGroup(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Level is how sore a muscle group is, ordered by increasing severity.
// The zero value is not a member.
type Level uint8

const (
	Fresh Level = iota + 1
	MildSoreness
	ModerateSoreness
	DeadSore
)

type levelInfo struct {
	name           string
	rank           int
	recommendation string
}

// levels is indexed by Level. Ranks must increase with declaration order.
var levels = [...]levelInfo{
	Fresh:            {"FRESH", 1, "Go for a heavy, high-intensity session."},
	MildSoreness:     {"MILD_SORENESS", 2, "Train with moderate volume; warm up thoroughly."},
	ModerateSoreness: {"MODERATE_SORENESS", 3, "Light technique work or mobility only."},
	DeadSore:         {"DEAD_SORE", 4, "Full rest. Focus on sleep and nutrition."},
}

// AllLevels returns every level from least to most severe.
func AllLevels() []Level {
	return []Level{Fresh, MildSoreness, ModerateSoreness, DeadSore}
}

func (l Level) Valid() bool {
	return l >= Fresh && l <= DeadSore
}

func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
	return levels[l].name
}

// Rank returns the severity rank. Invalid levels rank 0.
func (l Level) Rank() int {
	if !l.Valid() {
		return 0
	}
	return levels[l].rank
}

// Recommendation returns the advisory text for the level.
func (l Level) Recommendation() string {
	if !l.Valid() {
		return ""
	}
	return levels[l].recommendation
}

// SeverityRank is Level.Rank as a function.
func SeverityRank(l Level) int { return l.Rank() }

// Recommendation is Level.Recommendation as a function.
func Recommendation(l Level) string { return l.Recommendation() }

// ParseLevel accepts "MILD_SORENESS", "mild-soreness", "mild soreness" and
// similar spellings.
func ParseLevel(s string) (Level, error) {
	name := normalize(s)
	for _, l := range AllLevels() {
		if levels[l].name == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, uint8(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func normalize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

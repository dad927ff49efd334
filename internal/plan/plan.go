// Package plan turns a soreness status map into a train/rest plan.
package plan

import (
	"fmt"

	"github.com/claude/musclemap/internal/kv"
	"github.com/claude/musclemap/internal/soreness"
)

// Status maps each tracked muscle group to its current soreness.
type Status = kv.Map[soreness.MuscleGroup, soreness.Level]

// DefaultThreshold is the first level at which a group must rest.
const DefaultThreshold = soreness.DeadSore

// Verdict says whether a group can be trained today.
type Verdict string

const (
	Train Verdict = "TRAIN"
	Rest  Verdict = "REST"
)

// Overall recommendation lines.
const (
	OverallRest = "Total Rest Day!"
	OverallSafe = "Focus on safe groups."
)

// Classify returns Train when level ranks below threshold, Rest otherwise.
func Classify(level, threshold soreness.Level) Verdict {
	if level.Rank() < threshold.Rank() {
		return Train
	}
	return Rest
}

// NewStatus returns an empty insertion-ordered Status.
func NewStatus() Status {
	return kv.NewHashMap[soreness.MuscleGroup, soreness.Level]()
}

// StatusFromLevels builds a Status from levels, inserting groups in
// declaration order so traversal is stable regardless of map iteration.
func StatusFromLevels(levels map[soreness.MuscleGroup]soreness.Level) Status {
	s := NewStatus()
	for _, g := range soreness.AllMuscleGroups() {
		if level, ok := levels[g]; ok {
			kv.MustInsert(s, g, level)
		}
	}
	return s
}

// Probe is the outcome of looking up one candidate group.
type Probe struct {
	Group   soreness.MuscleGroup `json:"group"`
	Present bool                 `json:"present"`
	Level   soreness.Level       `json:"level,omitempty"`
}

// ProbeGroups checks each candidate in order, guarding every lookup with
// ContainsKey.
func ProbeGroups(status Status, groups []soreness.MuscleGroup) ([]Probe, error) {
	out := make([]Probe, 0, len(groups))
	for _, g := range groups {
		p := Probe{Group: g}
		if status.ContainsKey(g) {
			level, err := status.Value(g)
			if err != nil {
				return nil, fmt.Errorf("probing %s: %w", g, err)
			}
			p.Present = true
			p.Level = level
		}
		out = append(out, p)
	}
	return out, nil
}

// Entry is one line of the plan.
type Entry struct {
	Group          soreness.MuscleGroup `json:"group"`
	Level          soreness.Level       `json:"level"`
	Rank           int                  `json:"rank"`
	Verdict        Verdict              `json:"verdict"`
	Recommendation string               `json:"recommendation"`
}

// Plan is the classified traversal of a Status.
type Plan struct {
	Threshold soreness.Level `json:"threshold"`
	Entries   []Entry        `json:"entries"`
}

// Build classifies every binding in status in a single traversal.
func Build(status Status, threshold soreness.Level) (*Plan, error) {
	if !threshold.Valid() {
		return nil, fmt.Errorf("building plan: %w: %d", soreness.ErrUnknownLevel, uint8(threshold))
	}
	p := &Plan{Threshold: threshold, Entries: make([]Entry, 0, status.Size())}
	for g, level := range status.Entries() {
		if !level.Valid() {
			return nil, fmt.Errorf("building plan: %s: %w: %d", g, soreness.ErrUnknownLevel, uint8(level))
		}
		p.Entries = append(p.Entries, Entry{
			Group:          g,
			Level:          level,
			Rank:           level.Rank(),
			Verdict:        Classify(level, threshold),
			Recommendation: level.Recommendation(),
		})
	}
	return p, nil
}

// TrainingPossible reports whether any entry may be trained.
func (p *Plan) TrainingPossible() bool {
	for _, e := range p.Entries {
		if e.Verdict == Train {
			return true
		}
	}
	return false
}

// Overall returns the closing recommendation for the plan.
func (p *Plan) Overall() string {
	if p.TrainingPossible() {
		return OverallSafe
	}
	return OverallRest
}

// Filter returns the entries with the given verdict.
func (p *Plan) Filter(v Verdict) []Entry {
	var out []Entry
	for _, e := range p.Entries {
		if e.Verdict == v {
			out = append(out, e)
		}
	}
	return out
}

// DemoStatus returns the fixed demonstration status.
func DemoStatus() Status {
	s := NewStatus()
	kv.MustInsert(s, soreness.Chest, soreness.Fresh)
	kv.MustInsert(s, soreness.Back, soreness.MildSoreness)
	kv.MustInsert(s, soreness.Legs, soreness.DeadSore)
	kv.MustInsert(s, soreness.Arms, soreness.ModerateSoreness)
	return s
}

// DemoCandidates returns the groups the demo probes for.
func DemoCandidates() []soreness.MuscleGroup {
	return []soreness.MuscleGroup{
		soreness.Chest, soreness.Back, soreness.Legs, soreness.Arms, soreness.Shoulders,
	}
}

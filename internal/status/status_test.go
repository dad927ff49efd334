package status

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claude/musclemap/internal/kv"
	"github.com/claude/musclemap/internal/plan"
	"github.com/claude/musclemap/internal/soreness"
)

// TestDecodeYAML verifies names are parsed leniently and kept in document order.
func TestDecodeYAML(t *testing.T) {
	doc := `
legs: dead-sore
Chest: FRESH
back: mild soreness
`
	s, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := kv.Collect(s)
	want := []kv.Entry[soreness.MuscleGroup, soreness.Level]{
		{Key: soreness.Legs, Value: soreness.DeadSore},
		{Key: soreness.Chest, Value: soreness.Fresh},
		{Key: soreness.Back, Value: soreness.MildSoreness},
	}
	if len(got) != len(want) {
		t.Fatalf("decoded %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestDecodeJSON verifies JSON documents are accepted as well.
func TestDecodeJSON(t *testing.T) {
	s, err := Decode(strings.NewReader(`{"ARMS": "MODERATE_SORENESS"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v := kv.MustValue(s, soreness.Arms); v != soreness.ModerateSoreness {
		t.Errorf("ARMS = %s, want MODERATE_SORENESS", v)
	}
}

// TestDecodeDuplicateGroup verifies a repeated group surfaces as a duplicate-key
// error that names the offending line.
func TestDecodeDuplicateGroup(t *testing.T) {
	doc := "CHEST: FRESH\nBACK: FRESH\nchest: DEAD_SORE\n"
	_, err := Decode(strings.NewReader(doc))
	if !errors.Is(err, kv.ErrDuplicateKey) {
		t.Fatalf("error = %v, want ErrDuplicateKey", err)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error %q should mention line 3", err)
	}
}

// TestDecodeErrors verifies unknown names and malformed documents are rejected.
func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown group", "NECK: FRESH\n", soreness.ErrUnknownMuscleGroup},
		{"unknown level", "CHEST: WRECKED\n", soreness.ErrUnknownLevel},
		{"empty level", "CHEST:\n", soreness.ErrUnknownLevel},
		{"null level", "CHEST: ~\n", soreness.ErrUnknownLevel},
		{"null level before valid entry", "CHEST: null\nBACK: FRESH\n", soreness.ErrUnknownLevel},
		{"null group", "~: FRESH\n", soreness.ErrUnknownMuscleGroup},
		{"not a mapping", "- CHEST\n- BACK\n", nil},
		{"bad yaml", "CHEST: [\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestDecodeEmpty verifies an empty document is an empty status, not an error.
func TestDecodeEmpty(t *testing.T) {
	s, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Size() != 0 {
		t.Errorf("Size() = %d, want 0", s.Size())
	}
}

// TestEncode verifies the written document lists entries in traversal order
// and can be read back into the same bindings.
func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, plan.DemoStatus()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "CHEST: FRESH\nBACK: MILD_SORENESS\nLEGS: DEAD_SORE\nARMS: MODERATE_SORENESS\n"
	if got := buf.String(); got != want {
		t.Errorf("Encode =\n%s\nwant\n%s", got, want)
	}

	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	eq := func(a, b soreness.Level) bool { return a == b }
	if !kv.Equal(plan.DemoStatus(), back, eq) {
		t.Error("decoded status differs from encoded one")
	}
}

// TestLoad verifies reading a status document from disk.
func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.yaml")
	if err := os.WriteFile(path, []byte("SHOULDERS: FRESH\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.ContainsKey(soreness.Shoulders) {
		t.Error("SHOULDERS missing")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

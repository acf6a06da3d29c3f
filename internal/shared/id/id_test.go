package id

import (
	"strings"
	"sync"
	"testing"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGenerateString(t *testing.T) {
	gen := NewGenerator()

	id := gen.GenerateString()

	if len(id) != 26 {
		t.Errorf("ULID should be 26 characters, got %d", len(id))
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewGenerator()

	for _, prefix := range []string{"win", "req", "layout"} {
		id := gen.GenerateWithPrefix(prefix)

		if !strings.HasPrefix(id, prefix+"_") {
			t.Errorf("ID should start with '%s_', got: %s", prefix, id)
		}

		parts := strings.Split(id, "_")
		if len(parts) != 2 {
			t.Errorf("Prefixed ID should have format 'prefix_ulid', got: %s", id)
		}

		if !IsValid(parts[1]) {
			t.Errorf("ULID part should be valid: %s", parts[1])
		}
	}
}

func TestTypedIDGeneration(t *testing.T) {
	winID := NewWindowID()
	reqID := NewRequestID()
	layoutID := NewLayoutID()

	if !strings.HasPrefix(string(winID), "win_") {
		t.Errorf("WindowID should start with 'win_', got: %s", winID)
	}

	if !strings.HasPrefix(string(reqID), "req_") {
		t.Errorf("RequestID should start with 'req_', got: %s", reqID)
	}

	if !strings.HasPrefix(string(layoutID), "layout_") {
		t.Errorf("LayoutID should start with 'layout_', got: %s", layoutID)
	}
}

func TestIsValid(t *testing.T) {
	gen := NewGenerator()

	if !IsValid(gen.GenerateString()) {
		t.Error("Generated ULID should be valid")
	}

	if IsValid("not-a-ulid") {
		t.Error("Garbage should not validate")
	}
}

func TestTimestamp(t *testing.T) {
	gen := NewGenerator()
	id := gen.GenerateString()

	ts, err := Timestamp(id)
	if err != nil {
		t.Fatalf("Timestamp extraction failed: %v", err)
	}

	if ts.IsZero() {
		t.Error("Timestamp should not be zero")
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	var wg sync.WaitGroup
	seen := sync.Map{}

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				id := gen.GenerateString()
				if _, loaded := seen.LoadOrStore(id, true); loaded {
					t.Errorf("Duplicate ID generated: %s", id)
				}
			}
		}()
	}

	wg.Wait()
}

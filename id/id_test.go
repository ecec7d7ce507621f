package id_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/guidepost/guidepost/id"
)

func TestNew_GeneratesPrefixedID(t *testing.T) {
	tests := []struct {
		prefix id.Prefix
	}{
		{id.PrefixEntry},
		{id.PrefixSignal},
		{id.PrefixBackup},
	}
	for _, tt := range tests {
		got := id.New(tt.prefix)
		if got.IsNil() {
			t.Fatalf("New(%q) returned nil ID", tt.prefix)
		}
		if got.Prefix() != tt.prefix {
			t.Errorf("Prefix() = %q, want %q", got.Prefix(), tt.prefix)
		}
		if !strings.HasPrefix(got.String(), string(tt.prefix)+"_") {
			t.Errorf("String() = %q, want %q_ prefix", got.String(), tt.prefix)
		}
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		s := id.NewEntryID().String()
		if seen[s] {
			t.Fatalf("duplicate ID generated: %s", s)
		}
		seen[s] = true
	}
}

func TestParse_RoundTrip(t *testing.T) {
	orig := id.NewEntryID()

	parsed, err := id.Parse(orig.String())
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", orig.String(), err)
	}
	if parsed.String() != orig.String() {
		t.Errorf("round trip = %q, want %q", parsed.String(), orig.String())
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"garbage", "!!!not-an-id!!!"},
		{"bad suffix", "nav_zzzzzzzz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := id.Parse(tt.input); err == nil {
				t.Errorf("Parse(%q) = nil error, want error", tt.input)
			}
		})
	}
}

func TestParseEntryID_RejectsWrongPrefix(t *testing.T) {
	sig := id.NewSignalID()
	if _, err := id.ParseEntryID(sig.String()); err == nil {
		t.Errorf("ParseEntryID(%q) = nil error, want prefix mismatch", sig.String())
	}
}

func TestID_JSONRoundTrip(t *testing.T) {
	orig := id.NewEntryID()

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded id.ID
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.String() != orig.String() {
		t.Errorf("JSON round trip = %q, want %q", decoded.String(), orig.String())
	}
}

func TestNil_Behavior(t *testing.T) {
	if !id.Nil.IsNil() {
		t.Error("Nil.IsNil() = false")
	}
	if id.Nil.String() != "" {
		t.Errorf("Nil.String() = %q, want empty", id.Nil.String())
	}

	v, err := id.Nil.Value()
	if err != nil {
		t.Fatalf("Nil.Value() error: %v", err)
	}
	if v != nil {
		t.Errorf("Nil.Value() = %v, want nil", v)
	}
}

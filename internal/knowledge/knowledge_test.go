package knowledge

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestBuiltin_Keywords(t *testing.T) {
	t.Parallel()

	b := Builtin()

	want := []string{
		"fever", "cough", "chest pain", "headache",
		"nausea", "shortness of breath", "abdominal pain",
	}
	if got := b.Keywords(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords() = %v, want %v", got, want)
	}
	if b.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", b.Len(), len(want))
	}
}

func TestCandidatesFor_Known(t *testing.T) {
	t.Parallel()

	b := Builtin()

	cands := b.CandidatesFor("fever")
	if len(cands) != 2 {
		t.Fatalf("CandidatesFor(fever) = %d candidates, want 2", len(cands))
	}
	if cands[0].Name != "Influenza" {
		t.Errorf("first candidate = %q, want Influenza", cands[0].Name)
	}
	if cands[1].Name != "COVID-19" {
		t.Errorf("second candidate = %q, want COVID-19", cands[1].Name)
	}
	if cands[0].Summary == "" {
		t.Error("expected non-empty summary")
	}
}

func TestCandidatesFor_Unknown(t *testing.T) {
	t.Parallel()

	b := Builtin()
	if cands := b.CandidatesFor("no-such-keyword"); cands != nil {
		t.Errorf("CandidatesFor(unknown) = %v, want nil", cands)
	}
}

func TestCandidatesFor_CaseInsensitive(t *testing.T) {
	t.Parallel()

	b := Builtin()
	if cands := b.CandidatesFor("FEVER"); len(cands) != 2 {
		t.Errorf("CandidatesFor(FEVER) = %d candidates, want 2", len(cands))
	}
}

// Repeated lookups must return identical candidate lists in identical order.
func TestCandidatesFor_Idempotent(t *testing.T) {
	t.Parallel()

	b := Builtin()
	first := b.CandidatesFor("cough")
	for range 10 {
		if got := b.CandidatesFor("cough"); !reflect.DeepEqual(got, first) {
			t.Fatalf("CandidatesFor(cough) drifted: %v != %v", got, first)
		}
	}
}

// CandidatesFor returns copies; mutating the result must not touch the table.
func TestCandidatesFor_ReturnsCopy(t *testing.T) {
	t.Parallel()

	b := Builtin()
	cands := b.CandidatesFor("nausea")
	cands[0].Name = "mutated"

	if got := b.CandidatesFor("nausea"); got[0].Name != "Gastroenteritis" {
		t.Errorf("table mutated through returned slice: %q", got[0].Name)
	}
}

func TestRank_AuthoringOrder(t *testing.T) {
	t.Parallel()

	b := Builtin()

	// Influenza is authored before COVID-19, which is before Common Cold.
	if !(b.Rank("Influenza") < b.Rank("COVID-19")) {
		t.Error("expected Influenza to rank before COVID-19")
	}
	if !(b.Rank("COVID-19") < b.Rank("Common Cold")) {
		t.Error("expected COVID-19 to rank before Common Cold")
	}

	// Unknown conditions sort after everything authored.
	if b.Rank("Unknown Condition") <= b.Rank("Gastritis") {
		t.Error("expected unknown condition to rank after authored ones")
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty table", nil},
		{"empty keyword", []Entry{{Keyword: "  ", Candidates: []Candidate{{Name: "X"}}}}},
		{"no candidates", []Entry{{Keyword: "fever"}}},
		{"empty candidate name", []Entry{{Keyword: "fever", Candidates: []Candidate{{Name: ""}}}}},
		{"duplicate keyword", []Entry{
			{Keyword: "fever", Candidates: []Candidate{{Name: "A"}}},
			{Keyword: "Fever", Candidates: []Candidate{{Name: "B"}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := New(tt.entries); err == nil {
				t.Errorf("New(%s) = nil error, want error", tt.name)
			}
		})
	}
}

func TestNew_LowercasesKeywords(t *testing.T) {
	t.Parallel()

	b, err := New([]Entry{{Keyword: "Fever", Candidates: []Candidate{{Name: "Influenza"}}}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := b.Keywords(); got[0] != "fever" {
		t.Errorf("keyword = %q, want %q", got[0], "fever")
	}
}

func TestFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "knowledge.yaml")
	doc := `- keyword: dizziness
  candidates:
    - name: Vertigo
      summary: Inner-ear disturbance causing spinning sensation.
    - name: Dehydration
      summary: Often resolves with fluids.
- keyword: rash
  candidates:
    - name: Contact dermatitis
      summary: Skin reaction to an irritant.
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	b, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
	cands := b.CandidatesFor("dizziness")
	if len(cands) != 2 || cands[0].Name != "Vertigo" {
		t.Errorf("CandidatesFor(dizziness) = %v", cands)
	}
	if b.Rank("Vertigo") >= b.Rank("Contact dermatitis") {
		t.Error("expected Vertigo to rank before Contact dermatitis")
	}
}

func TestFromFile_Missing(t *testing.T) {
	t.Parallel()

	if _, err := FromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFromFile_BadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := FromFile(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

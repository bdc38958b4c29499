package assistant

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadKnowledgeBaseEmptyPath(t *testing.T) {
	kb, err := LoadKnowledgeBase("")
	if err != nil {
		t.Fatalf("Failed to load default knowledge base: %v", err)
	}
	if len(kb.Diseases) != 3 || len(kb.Fevers) != 4 || len(kb.Topics) != 2 {
		t.Errorf("Unexpected default table sizes: %d diseases, %d fevers, %d topics", len(kb.Diseases), len(kb.Fevers), len(kb.Topics))
	}
}

func TestLoadKnowledgeBaseFromYAML(t *testing.T) {
	data, err := yaml.Marshal(Default())
	if err != nil {
		t.Fatalf("Failed to marshal default knowledge base: %v", err)
	}
	path := filepath.Join(t.TempDir(), "knowledge.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write knowledge file: %v", err)
	}

	kb, err := LoadKnowledgeBase(path)
	if err != nil {
		t.Fatalf("Failed to load knowledge file: %v", err)
	}
	fromFile, err := NewClassifier(kb)
	if err != nil {
		t.Fatalf("Failed to create classifier: %v", err)
	}
	builtin := newDefaultClassifier(t)

	for _, input := range []string{"diabetes", "fever and joint rash", "food", "hello"} {
		if fromFile.Classify(input) != builtin.Classify(input) {
			t.Errorf("File-loaded knowledge base answers %q differently", input)
		}
	}
}

func TestLoadKnowledgeBaseErrors(t *testing.T) {
	if _, err := LoadKnowledgeBase(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("diseases: [this is: not valid"), 0o644); err != nil {
		t.Fatalf("Failed to write knowledge file: %v", err)
	}
	if _, err := LoadKnowledgeBase(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, []byte("fallback: hi\n"), 0o644); err != nil {
		t.Fatalf("Failed to write knowledge file: %v", err)
	}
	if _, err := LoadKnowledgeBase(empty); !errors.Is(err, ErrInvalidKnowledge) {
		t.Errorf("Expected ErrInvalidKnowledge, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		mutate      func(kb *KnowledgeBase)
		description string
	}{
		{func(kb *KnowledgeBase) { kb.Diseases = nil }, "No diseases"},
		{func(kb *KnowledgeBase) { kb.Diseases[0].Key = "" }, "Empty disease key"},
		{func(kb *KnowledgeBase) { kb.Diseases[0].Key = "Diabetes" }, "Uppercase disease key"},
		{func(kb *KnowledgeBase) { kb.Diseases[1].Key = "diabetes" }, "Duplicate disease key"},
		{func(kb *KnowledgeBase) { kb.Diseases[0].Name = " " }, "Blank disease name"},
		{func(kb *KnowledgeBase) { kb.Diseases[2].Diet = nil }, "Missing diet section"},
		{func(kb *KnowledgeBase) { kb.Diseases[0].Symptoms = []string{"Fatigue", ""} }, "Blank bullet"},
		{func(kb *KnowledgeBase) { kb.FeverTriggers = nil }, "No fever triggers"},
		{func(kb *KnowledgeBase) { kb.Fevers[0].Primary = "" }, "Fever without primary term"},
		{func(kb *KnowledgeBase) { kb.Fevers[2].Name = "" }, "Fever without name"},
		{func(kb *KnowledgeBase) { kb.Fevers[1].Cues = nil }, "Fever without cues"},
		{func(kb *KnowledgeBase) { kb.Fevers[3].Cues = []string{"Cold", "body ache"} }, "Uppercase fever cue"},
		{func(kb *KnowledgeBase) { kb.Fevers[2].Response.Sections = nil }, "Fever without sections"},
		{func(kb *KnowledgeBase) { kb.Topics[0].Keywords = nil }, "Topic without keywords"},
		{func(kb *KnowledgeBase) { kb.Topics[1].Name = " " }, "Topic without name"},
		{func(kb *KnowledgeBase) { kb.Topics[1].Response.Intro = "" }, "Topic without intro"},
		{func(kb *KnowledgeBase) { kb.Fallback = "" }, "Empty fallback"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			kb := Default()
			tc.mutate(kb)
			if _, err := NewClassifier(kb); !errors.Is(err, ErrInvalidKnowledge) {
				t.Errorf("Expected ErrInvalidKnowledge, got %v", err)
			}
		})
	}

	var nilKB *KnowledgeBase
	if err := nilKB.Validate(); !errors.Is(err, ErrInvalidKnowledge) {
		t.Errorf("Expected ErrInvalidKnowledge for nil knowledge base, got %v", err)
	}
}

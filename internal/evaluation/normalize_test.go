package evaluation

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeKeys_FlatFormat(t *testing.T) {
	raw := map[string]any{
		"coherence_score":            7.0,
		"coherence_feedback":         "well organized",
		"lexical_resource_score":     6.5,
		"lexical_resource_feedback":  "good range",
		"grammatical_range_score":    6.0,
		"grammatical_range_feedback": "some errors",
		"task_response_score":        7.0,
		"task_response_feedback":     "on topic",
		"overall_feedback":           "solid answer",
	}

	got := normalizeKeys(raw, speakingAliases)

	for _, key := range []string{"coherence", "lexical_resource", "grammatical_range", "task_response"} {
		nested, ok := got[key].(map[string]any)
		if !ok {
			t.Fatalf("expected %s to be a nested object, got %T", key, got[key])
		}
		if nested["score"] == nil || nested["feedback"] == nil {
			t.Errorf("%s missing score or feedback: %v", key, nested)
		}
		// Flat keys must be consumed, not duplicated.
		if _, left := got[key+"_score"]; left {
			t.Errorf("flat key %s_score should have been removed", key)
		}
		if _, left := got[key+"_feedback"]; left {
			t.Errorf("flat key %s_feedback should have been removed", key)
		}
	}

	if got["overall_feedback"] != "solid answer" {
		t.Errorf("overall_feedback = %v, want %q", got["overall_feedback"], "solid answer")
	}
}

func TestNormalizeKeys_BareNumbers(t *testing.T) {
	raw := map[string]any{
		"coherence":         7.0,
		"lexical_resource":  6.0,
		"grammatical_range": 6.5,
		"task_response":     7.5,
	}

	got := normalizeKeys(raw, speakingAliases)

	nested, ok := got["coherence"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested object, got %T", got["coherence"])
	}
	if nested["score"] != 7.0 {
		t.Errorf("score = %v, want 7.0", nested["score"])
	}
	if nested["feedback"] != "" {
		t.Errorf("feedback = %v, want empty string", nested["feedback"])
	}
}

func TestNormalizeKeys_MissingCriteriaDefault(t *testing.T) {
	got := normalizeKeys(map[string]any{}, speakingAliases)

	for _, key := range speakingAliases.criteria {
		nested, ok := got[key].(map[string]any)
		if !ok {
			t.Fatalf("expected default object for %s, got %T", key, got[key])
		}
		if nested["score"] != 0 {
			t.Errorf("%s default score = %v, want 0", key, nested["score"])
		}
		if nested["feedback"] != "" {
			t.Errorf("%s default feedback = %v, want empty", key, nested["feedback"])
		}
	}
	if got["overall_feedback"] != "" {
		t.Errorf("overall_feedback default = %v, want empty string", got["overall_feedback"])
	}
}

func TestNormalizeKeys_NestedBackfill(t *testing.T) {
	raw := map[string]any{
		"coherence": map[string]any{"score": 6.5},
		"grammar":   map[string]any{"feedback": "frequent tense slips"},
	}

	got := normalizeKeys(raw, speakingAliases)

	coherence := got["coherence"].(map[string]any)
	if coherence["feedback"] != "" {
		t.Errorf("coherence feedback backfill = %v, want empty", coherence["feedback"])
	}

	grammar, ok := got["grammatical_range"].(map[string]any)
	if !ok {
		t.Fatalf("grammar alias not remapped: %v", got)
	}
	if grammar["score"] != 0 {
		t.Errorf("grammatical_range score backfill = %v, want 0", grammar["score"])
	}
	if grammar["feedback"] != "frequent tense slips" {
		t.Errorf("grammatical_range feedback = %v", grammar["feedback"])
	}
}

func TestNormalizeKeys_AliasCoverage(t *testing.T) {
	tables := []struct {
		name   string
		tables criterionAliases
	}{
		{"speaking", speakingAliases},
		{"writing", writingAliases},
	}

	for _, tc := range tables {
		t.Run(tc.name+"/score", func(t *testing.T) {
			for alias, canonical := range tc.tables.scoreAliases {
				raw := map[string]any{alias: 6.0}
				got := normalizeKeys(raw, tc.tables)

				criterion := canonical[:len(canonical)-len("_score")]
				nested, ok := got[criterion].(map[string]any)
				if !ok {
					t.Fatalf("alias %s: criterion %s not assembled: %v", alias, criterion, got)
				}
				if nested["score"] != 6.0 {
					t.Errorf("alias %s: score = %v, want 6.0", alias, nested["score"])
				}
			}
		})

		t.Run(tc.name+"/nested", func(t *testing.T) {
			for alias, canonical := range tc.tables.nestedAliases {
				raw := map[string]any{alias: map[string]any{"score": 5.5, "feedback": "x"}}
				got := normalizeKeys(raw, tc.tables)

				if canonical == "overall_feedback" {
					// A non-string under overall_feedback is replaced by an
					// empty string in step 4.
					if _, ok := got["overall_feedback"].(string); !ok {
						t.Errorf("alias %s: overall_feedback is %T, want string", alias, got["overall_feedback"])
					}
					continue
				}
				nested, ok := got[canonical].(map[string]any)
				if !ok {
					t.Fatalf("alias %s: canonical %s not present: %v", alias, canonical, got)
				}
				if nested["score"] != 5.5 {
					t.Errorf("alias %s: score = %v, want 5.5", alias, nested["score"])
				}
			}
		})
	}
}

func TestNormalizeKeys_OverallFeedbackAliases(t *testing.T) {
	for _, alias := range []string{"feedback", "summary", "overall", "general_feedback", "examiner_feedback"} {
		raw := map[string]any{alias: "keep practicing"}
		got := normalizeKeys(raw, speakingAliases)
		if got["overall_feedback"] != "keep practicing" {
			t.Errorf("alias %s: overall_feedback = %v", alias, got["overall_feedback"])
		}
	}
}

func TestNormalizeKeys_NeverOverwritesCanonical(t *testing.T) {
	raw := map[string]any{
		"coherence_score": 7.0,
		"fluency_score":   3.0, // alias must lose to the canonical key
	}

	got := normalizeKeys(raw, speakingAliases)

	nested := got["coherence"].(map[string]any)
	if nested["score"] != 7.0 {
		t.Errorf("canonical key overwritten by alias: score = %v, want 7.0", nested["score"])
	}
}

func TestNormalizeKeys_Idempotent(t *testing.T) {
	raw := map[string]any{
		"grammar_score":      6.0,
		"vocabulary":         map[string]any{"score": 5.0, "feedback": "basic"},
		"task_response":      7.0,
		"summary":            "decent",
		"grammar_corrections": []any{map[string]any{"original": "he go", "corrected": "he goes"}},
	}

	once := normalizeKeys(raw, speakingAliases)

	// Deep copy via a fresh map walk is overkill; normalizeKeys mutates in
	// place, so run it again on the already normalized map.
	twice := normalizeKeys(once, speakingAliases)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second normalization changed the map:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestNormalizeKeys_EnrichmentPassthrough(t *testing.T) {
	list := []any{map[string]any{"original": "a", "corrected": "b"}}
	raw := map[string]any{"grammar_corrections": list}

	got := normalizeKeys(raw, speakingAliases)

	if !reflect.DeepEqual(got["grammar_corrections"], list) {
		t.Errorf("enrichment list modified: %v", got["grammar_corrections"])
	}
}

func TestParseNormalized_ValidatesRange(t *testing.T) {
	var result ContentEvaluation
	err := parseNormalized(`{"coherence_score": 11, "lexical_resource_score": 6}`, speakingAliases, &result)
	if err == nil {
		t.Fatal("expected validation error for out-of-range score")
	}
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected *EvaluationError, got %T", err)
	}
	if evalErr.Raw == "" {
		t.Error("expected raw response to be preserved on the error")
	}
}

func TestParseNormalized_RejectsNonJSON(t *testing.T) {
	var result ContentEvaluation
	err := parseNormalized("the candidate did well", speakingAliases, &result)
	if err == nil {
		t.Fatal("expected error for non-JSON input")
	}
}

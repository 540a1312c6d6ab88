package evaluation

import "sort"

// Key normalization for local-model output. Chat models without schema
// enforcement emit semantically equivalent JSON under wildly varying key
// names and shapes:
//
//  1. Flat keys: {"coherence_score": 7, "coherence_feedback": "..."}
//     (our preferred prompt format)
//  2. Nested objects: {"coherence": {"score": 7, "feedback": "..."}}
//  3. Bare values: {"coherence": 7}
//  4. Alternative names: {"grammar": 7} instead of "grammatical_range"
//
// normalizeKeys reconciles all four into the nested canonical shape. It only
// handles KNOWN naming variance; anything still malformed afterwards is
// rejected by schema validation, not coerced further.

// criterionAliases parameterizes the normalizer so the speaking and writing
// schemas share one routine instead of two copies.
type criterionAliases struct {
	criteria        []string          // canonical nested criterion keys
	scoreAliases    map[string]string // alt flat score key -> canonical flat score key
	feedbackAliases map[string]string // alt flat feedback key -> canonical flat feedback key
	nestedAliases   map[string]string // alt nested key -> canonical nested key
}

var speakingAliases = criterionAliases{
	criteria: []string{"coherence", "lexical_resource", "grammatical_range", "task_response"},
	scoreAliases: map[string]string{
		// coherence
		"coherence_and_cohesion_score": "coherence_score",
		"fluency_and_coherence_score":  "coherence_score",
		"fluency_coherence_score":      "coherence_score",
		"fluency_score":                "coherence_score",
		// lexical_resource
		"vocabulary_score": "lexical_resource_score",
		"lexical_score":    "lexical_resource_score",
		"vocab_score":      "lexical_resource_score",
		// grammatical_range
		"grammar_score":                       "grammatical_range_score",
		"grammatical_range_and_accuracy_score": "grammatical_range_score",
		"grammatical_accuracy_score":          "grammatical_range_score",
		// task_response
		"task_achievement_score": "task_response_score",
		"relevance_score":        "task_response_score",
	},
	feedbackAliases: map[string]string{
		"coherence_and_cohesion_feedback": "coherence_feedback",
		"fluency_and_coherence_feedback":  "coherence_feedback",
		"vocabulary_feedback":             "lexical_resource_feedback",
		"lexical_feedback":                "lexical_resource_feedback",
		"grammar_feedback":                "grammatical_range_feedback",
		"grammatical_accuracy_feedback":   "grammatical_range_feedback",
		"task_achievement_feedback":       "task_response_feedback",
		"relevance_feedback":              "task_response_feedback",
	},
	nestedAliases: map[string]string{
		"coherence_and_cohesion":         "coherence",
		"fluency_and_coherence":          "coherence",
		"fluency_coherence":              "coherence",
		"fluency":                        "coherence",
		"vocabulary":                     "lexical_resource",
		"lexical":                        "lexical_resource",
		"vocab":                          "lexical_resource",
		"grammar":                        "grammatical_range",
		"grammatical_range_and_accuracy": "grammatical_range",
		"grammar_range":                  "grammatical_range",
		"grammatical_accuracy":           "grammatical_range",
		"task_achievement":               "task_response",
		"task":                           "task_response",
		"relevance":                      "task_response",
		"response_relevance":             "task_response",
		"feedback":                       "overall_feedback",
		"summary":                        "overall_feedback",
		"overall":                        "overall_feedback",
		"general_feedback":               "overall_feedback",
		"examiner_feedback":              "overall_feedback",
	},
}

// Writing flips the task direction: task_achievement is canonical and
// task_response is the alias.
var writingAliases = criterionAliases{
	criteria: []string{"task_achievement", "coherence", "lexical_resource", "grammatical_range"},
	scoreAliases: map[string]string{
		"coherence_and_cohesion_score": "coherence_score",
		"cohesion_score":               "coherence_score",
		"vocabulary_score":             "lexical_resource_score",
		"lexical_score":                "lexical_resource_score",
		"vocab_score":                  "lexical_resource_score",
		"grammar_score":                       "grammatical_range_score",
		"grammatical_range_and_accuracy_score": "grammatical_range_score",
		"grammatical_accuracy_score":          "grammatical_range_score",
		"task_response_score": "task_achievement_score",
		"task_score":          "task_achievement_score",
		"relevance_score":     "task_achievement_score",
	},
	feedbackAliases: map[string]string{
		"coherence_and_cohesion_feedback": "coherence_feedback",
		"cohesion_feedback":               "coherence_feedback",
		"vocabulary_feedback":             "lexical_resource_feedback",
		"lexical_feedback":                "lexical_resource_feedback",
		"grammar_feedback":                "grammatical_range_feedback",
		"grammatical_accuracy_feedback":   "grammatical_range_feedback",
		"task_response_feedback":          "task_achievement_feedback",
		"task_feedback":                   "task_achievement_feedback",
	},
	nestedAliases: map[string]string{
		"coherence_and_cohesion":         "coherence",
		"cohesion":                       "coherence",
		"vocabulary":                     "lexical_resource",
		"lexical":                        "lexical_resource",
		"vocab":                          "lexical_resource",
		"grammar":                        "grammatical_range",
		"grammatical_range_and_accuracy": "grammatical_range",
		"grammar_range":                  "grammatical_range",
		"grammatical_accuracy":           "grammatical_range",
		"task_response":                  "task_achievement",
		"task":                           "task_achievement",
		"relevance":                      "task_achievement",
		"feedback":                       "overall_feedback",
		"summary":                        "overall_feedback",
		"overall":                        "overall_feedback",
		"general_feedback":               "overall_feedback",
		"examiner_feedback":              "overall_feedback",
	},
}

// normalizeKeys rewrites raw into the nested canonical shape. The steps run
// in a fixed order so the routine is deterministic and idempotent: aliases
// never overwrite a canonical key that is already present, and a second pass
// over normalized output is a no-op. Enrichment lists pass through untouched;
// validating their item shape is the outer schema's job.
func normalizeKeys(raw map[string]any, tables criterionAliases) map[string]any {
	// 1. Remap aliased flat score and feedback keys. Alias tables are walked
	// in sorted key order so two aliases racing for the same canonical key
	// resolve deterministically.
	remapAll(raw, tables.scoreAliases)
	remapAll(raw, tables.feedbackAliases)

	// 2. Remap aliased nested keys.
	remapAll(raw, tables.nestedAliases)

	// 3. Assemble a nested {score, feedback} object for every criterion.
	for _, key := range tables.criteria {
		scoreKey := key + "_score"
		feedbackKey := key + "_feedback"

		if score, ok := raw[scoreKey]; ok {
			// Flat format: pop the flat keys into a nested object.
			delete(raw, scoreKey)
			feedback := any("")
			if fb, ok := raw[feedbackKey]; ok {
				feedback = fb
				delete(raw, feedbackKey)
			}
			raw[key] = map[string]any{"score": score, "feedback": feedback}
			continue
		}

		switch val := raw[key].(type) {
		case float64:
			raw[key] = map[string]any{"score": val, "feedback": ""}
		case int:
			raw[key] = map[string]any{"score": val, "feedback": ""}
		case map[string]any:
			// Already nested: backfill missing subfields only.
			if _, ok := val["score"]; !ok {
				val["score"] = 0
			}
			if _, ok := val["feedback"]; !ok {
				val["feedback"] = ""
			}
		default:
			raw[key] = map[string]any{"score": 0, "feedback": ""}
		}
	}

	// 4. overall_feedback must exist as a string.
	if _, ok := raw["overall_feedback"].(string); !ok {
		raw["overall_feedback"] = ""
	}

	return raw
}

func remapAll(raw map[string]any, aliases map[string]string) {
	keys := make([]string, 0, len(aliases))
	for alias := range aliases {
		keys = append(keys, alias)
	}
	sort.Strings(keys)
	for _, alias := range keys {
		remapKey(raw, alias, aliases[alias])
	}
}

// remapKey moves raw[alias] to raw[canonical] unless the canonical key is
// already present — a present canonical value is never overwritten. Stray
// alias keys left behind are ignored by the outer unmarshal.
func remapKey(raw map[string]any, alias, canonical string) {
	val, ok := raw[alias]
	if !ok {
		return
	}
	if _, exists := raw[canonical]; exists {
		return
	}
	raw[canonical] = val
	delete(raw, alias)
}

package scoring_test

import (
	"testing"

	"github.com/fluentband/backend/internal/audio"
	"github.com/fluentband/backend/internal/evaluation"
	"github.com/fluentband/backend/internal/scoring"
)

func contentAt(score float64) *evaluation.ContentEvaluation {
	return &evaluation.ContentEvaluation{
		Coherence:        evaluation.CriterionScore{Score: score},
		LexicalResource:  evaluation.CriterionScore{Score: score},
		GrammaticalRange: evaluation.CriterionScore{Score: score},
		TaskResponse:     evaluation.CriterionScore{Score: score},
	}
}

func TestBlend_IdealDelivery(t *testing.T) {
	// 140 wpm and 10% pauses both score 9; perfect transcriber confidence
	// gives pronunciation 9.
	metrics := audio.Metrics{
		Duration:                60,
		SpeechRate:              140,
		PauseRatio:              0.10,
		PronunciationConfidence: 1.0,
	}
	got := scoring.Blend(contentAt(9), metrics)

	if got.FluencyCoherence != 9 {
		t.Errorf("FluencyCoherence = %v, want 9", got.FluencyCoherence)
	}
	if got.Pronunciation != 9 {
		t.Errorf("Pronunciation = %v, want 9", got.Pronunciation)
	}
	if got.OverallBand != 9 {
		t.Errorf("OverallBand = %v, want 9", got.OverallBand)
	}
}

func TestBlend_Deterministic(t *testing.T) {
	metrics := audio.Metrics{Duration: 45, SpeechRate: 110, PauseRatio: 0.2, PronunciationConfidence: 0.83}
	content := contentAt(6.5)

	first := scoring.Blend(content, metrics)
	for i := 0; i < 10; i++ {
		if got := scoring.Blend(content, metrics); got != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestBlend_FluencyMixesAudioAndContent(t *testing.T) {
	// audio fluency = (7.0 + 7.0)/2 = 7; coherence 5 → 0.5*7 + 0.5*5 = 6.
	metrics := audio.Metrics{Duration: 60, SpeechRate: 110, PauseRatio: 0.2, PronunciationConfidence: 0.6}
	content := contentAt(5)

	got := scoring.Blend(content, metrics)

	if got.FluencyCoherence != 6 {
		t.Errorf("FluencyCoherence = %v, want 6", got.FluencyCoherence)
	}
	// Lexical and grammar pass through the content score untouched.
	if got.LexicalResource != 5 || got.GrammaticalRange != 5 {
		t.Errorf("content passthrough = %v / %v, want 5 / 5", got.LexicalResource, got.GrammaticalRange)
	}
	// confidence 0.6 → 6.0
	if got.Pronunciation != 6 {
		t.Errorf("Pronunciation = %v, want 6", got.Pronunciation)
	}
}

func TestBlend_ZeroDurationFloor(t *testing.T) {
	// Degenerate audio: zero rate, full pauses, zero confidence. Everything
	// clamps to the band floor regardless of content scores.
	metrics := audio.Metrics{Duration: 0, SpeechRate: 0, PauseRatio: 1, PronunciationConfidence: 0}
	got := scoring.Blend(contentAt(9), metrics)

	if got.Pronunciation != 4 {
		t.Errorf("Pronunciation = %v, want floor 4", got.Pronunciation)
	}
	// audio fluency = 4, coherence 9 → 6.5
	if got.FluencyCoherence != 6.5 {
		t.Errorf("FluencyCoherence = %v, want 6.5", got.FluencyCoherence)
	}
}

func TestBlend_ClampsToBandRange(t *testing.T) {
	metrics := audio.Metrics{Duration: 60, SpeechRate: 140, PauseRatio: 0.1, PronunciationConfidence: 1}
	got := scoring.Blend(contentAt(0), metrics)

	for name, v := range map[string]float64{
		"overall":   got.OverallBand,
		"fluency":   got.FluencyCoherence,
		"lexical":   got.LexicalResource,
		"grammar":   got.GrammaticalRange,
		"pronounce": got.Pronunciation,
	} {
		if v < 4 || v > 9 {
			t.Errorf("%s = %v outside [4,9]", name, v)
		}
	}
}

func TestRateBoundaries(t *testing.T) {
	// The rate component is observable through FluencyCoherence when
	// coherence and pauses are held at 9-band values.
	base := audio.Metrics{Duration: 60, PauseRatio: 0.05, PronunciationConfidence: 1}
	tests := []struct {
		wpm  float64
		want float64 // fluency = 0.5*((rate+9)/2) + 0.5*9, rounded to 0.5
	}{
		{120, 9},   // rate 9 → 9
		{160, 9},   // inclusive upper bound
		{100, 8.5}, // rate 7 → 8.5
		{161, 8.5}, // just past the ideal range
		{80, 8},    // rate 5.5 → 8.125 → 8
		{60, 8},    // rate 4 → 7.75, and .75 rounds up to the next half
	}
	for _, tt := range tests {
		m := base
		m.SpeechRate = tt.wpm
		got := scoring.Blend(contentAt(9), m)
		if got.FluencyCoherence != tt.want {
			t.Errorf("wpm %v: FluencyCoherence = %v, want %v", tt.wpm, got.FluencyCoherence, tt.want)
		}
	}
}

func TestWritingBand(t *testing.T) {
	eval := &evaluation.WritingEvaluation{
		TaskAchievement:  evaluation.CriterionScore{Score: 7},
		Coherence:        evaluation.CriterionScore{Score: 7},
		LexicalResource:  evaluation.CriterionScore{Score: 6.5},
		GrammaticalRange: evaluation.CriterionScore{Score: 7.5},
	}
	if got := scoring.WritingBand(eval); got != 7 {
		t.Errorf("WritingBand = %v, want 7", got)
	}
}

func TestWritingBand_NoClamp(t *testing.T) {
	// Writing bands keep their native range; a weak essay can score below 4.
	eval := &evaluation.WritingEvaluation{
		TaskAchievement:  evaluation.CriterionScore{Score: 3},
		Coherence:        evaluation.CriterionScore{Score: 3},
		LexicalResource:  evaluation.CriterionScore{Score: 3},
		GrammaticalRange: evaluation.CriterionScore{Score: 3},
	}
	if got := scoring.WritingBand(eval); got != 3 {
		t.Errorf("WritingBand = %v, want 3", got)
	}
}

func TestRoundHalf(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{6.24, 6.0},
		{6.25, 6.5},
		{6.74, 6.5},
		{6.75, 7.0},
		{7.0, 7.0},
	}
	for _, tt := range tests {
		if got := scoring.RoundHalf(tt.in); got != tt.want {
			t.Errorf("RoundHalf(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// Package scoring blends content evaluation with audio delivery metrics into
// final IELTS band scores. Everything here is a pure function: no I/O, same
// input always yields the same output.
package scoring

import (
	"math"

	"github.com/fluentband/backend/internal/audio"
	"github.com/fluentband/backend/internal/evaluation"
)

// CombinedBand is the final 4-criterion speaking result plus the overall
// band. All scores are rounded to the nearest 0.5 and clamped to [4,9], the
// practical floor and ceiling of the rubric.
type CombinedBand struct {
	OverallBand      float64 `json:"overall_band"`
	FluencyCoherence float64 `json:"fluency_coherence"`
	LexicalResource  float64 `json:"lexical_resource"`
	GrammaticalRange float64 `json:"grammatical_range"`
	Pronunciation    float64 `json:"pronunciation"`
}

// Blend combines AI content scores with audio delivery metrics.
//
// IELTS has 4 equally weighted criteria (25% each):
//   - Fluency & Coherence: 50% audio fluency + 50% AI coherence
//   - Lexical Resource: 100% AI content evaluation
//   - Grammatical Range & Accuracy: 100% AI content evaluation
//   - Pronunciation: 100% audio metrics (transcriber confidence)
func Blend(content *evaluation.ContentEvaluation, metrics audio.Metrics) CombinedBand {
	audioFluency := (rateScore(metrics.SpeechRate) + pauseScore(metrics.PauseRatio)) / 2

	fluencyCoherence := 0.5*audioFluency + 0.5*content.Coherence.Score
	lexical := content.LexicalResource.Score
	grammar := content.GrammaticalRange.Score
	pronunciation := clampBand(metrics.PronunciationConfidence * 10)

	overall := (fluencyCoherence + lexical + grammar + pronunciation) / 4

	return CombinedBand{
		OverallBand:      clampBand(roundHalf(overall)),
		FluencyCoherence: clampBand(roundHalf(fluencyCoherence)),
		LexicalResource:  clampBand(roundHalf(lexical)),
		GrammaticalRange: clampBand(roundHalf(grammar)),
		Pronunciation:    clampBand(roundHalf(pronunciation)),
	}
}

// WritingBand is the unweighted average of the four writing criteria,
// rounded to the nearest 0.5. No audio blend and no floor clamp: writing
// criteria stay in their native 0-9 range.
func WritingBand(eval *evaluation.WritingEvaluation) float64 {
	raw := (eval.TaskAchievement.Score +
		eval.Coherence.Score +
		eval.LexicalResource.Score +
		eval.GrammaticalRange.Score) / 4
	return roundHalf(raw)
}

// rateScore maps words-per-minute onto a band: the 120-160 range is natural
// examiner pace, with symmetric penalties for too slow and too fast.
func rateScore(wpm float64) float64 {
	switch {
	case wpm >= 120 && wpm <= 160:
		return 9.0
	case (wpm >= 100 && wpm < 120) || (wpm > 160 && wpm <= 180):
		return 7.0
	case (wpm >= 80 && wpm < 100) || (wpm > 180 && wpm <= 200):
		return 5.5
	default:
		return 4.0
	}
}

func pauseScore(pauseRatio float64) float64 {
	switch {
	case pauseRatio < 0.15:
		return 9.0
	case pauseRatio < 0.25:
		return 7.0
	case pauseRatio < 0.40:
		return 5.5
	default:
		return 4.0
	}
}

// RoundHalf quantizes a band score to the nearest 0.5.
func RoundHalf(v float64) float64 { return roundHalf(v) }

func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

func clampBand(v float64) float64 {
	return math.Max(4.0, math.Min(9.0, v))
}

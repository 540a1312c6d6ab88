// Package audio derives delivery metrics from transcription output. The
// transcription collaborator supplies per-word timings and confidence; this
// package turns them into the speech-rate, pause, and pronunciation signals
// the band-blending engine consumes.
package audio

import "strings"

// Word is one transcribed word with its timing and confidence, as supplied
// by the transcription collaborator.
type Word struct {
	Text        string  `json:"text"`
	Start       float64 `json:"start"` // seconds
	End         float64 `json:"end"`   // seconds
	Probability float64 `json:"probability"`
}

// Metrics are the delivery measurements for one recorded attempt.
// Read-only input to the blending engine.
type Metrics struct {
	Duration                float64 `json:"duration"`     // seconds
	SpeechRate              float64 `json:"speech_rate"`  // words per minute
	PauseRatio              float64 `json:"pause_ratio"`  // [0,1] fraction of silence
	PronunciationConfidence float64 `json:"pronunciation_confidence"` // [0,1]
	LongPauses              int     `json:"long_pauses"`  // gaps of at least 1s
}

// Analyzer computes delivery metrics for one attempt.
type Analyzer interface {
	Analyze(duration float64, transcript string, words []Word) Metrics
}

// longPauseThreshold is the silence length, in seconds, counted as a long
// pause (a hesitation an examiner would notice).
const longPauseThreshold = 1.0

// TimingAnalyzer derives metrics from word timings: silence is whatever time
// the recording spent outside spoken words. Degenerate input (zero duration,
// no words) yields worst-case metrics, never an error.
type TimingAnalyzer struct{}

var _ Analyzer = TimingAnalyzer{}

func (TimingAnalyzer) Analyze(duration float64, transcript string, words []Word) Metrics {
	if duration <= 0 {
		return Metrics{Duration: 0, SpeechRate: 0, PauseRatio: 1, PronunciationConfidence: 0}
	}

	wordCount := len(strings.Fields(transcript))
	speechRate := float64(wordCount) / (duration / 60)

	pauseRatio := 1.0
	longPauses := 0
	if len(words) > 0 {
		speechTime := 0.0
		for i, w := range words {
			speechTime += w.End - w.Start
			if i > 0 {
				if gap := w.Start - words[i-1].End; gap >= longPauseThreshold {
					longPauses++
				}
			}
		}
		// Leading and trailing silence count too.
		if words[0].Start >= longPauseThreshold {
			longPauses++
		}
		if duration-words[len(words)-1].End >= longPauseThreshold {
			longPauses++
		}
		pauseRatio = clamp01(1 - speechTime/duration)
	}

	confidence := 0.0
	if len(words) > 0 {
		sum := 0.0
		for _, w := range words {
			sum += w.Probability
		}
		confidence = clamp01(sum / float64(len(words)))
	}

	return Metrics{
		Duration:                duration,
		SpeechRate:              speechRate,
		PauseRatio:              pauseRatio,
		PronunciationConfidence: confidence,
		LongPauses:              longPauses,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

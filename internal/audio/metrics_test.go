package audio_test

import (
	"math"
	"testing"

	"github.com/fluentband/backend/internal/audio"
)

func TestTimingAnalyzer_ZeroDuration(t *testing.T) {
	got := audio.TimingAnalyzer{}.Analyze(0, "some words", nil)

	if got.Duration != 0 || got.SpeechRate != 0 {
		t.Errorf("duration/rate = %v/%v, want 0/0", got.Duration, got.SpeechRate)
	}
	if got.PauseRatio != 1 {
		t.Errorf("PauseRatio = %v, want 1", got.PauseRatio)
	}
	if got.PronunciationConfidence != 0 {
		t.Errorf("PronunciationConfidence = %v, want 0", got.PronunciationConfidence)
	}
}

func TestTimingAnalyzer_SpeechRate(t *testing.T) {
	// 30 words over 12 seconds = 150 wpm.
	transcript := ""
	for i := 0; i < 30; i++ {
		transcript += "word "
	}
	got := audio.TimingAnalyzer{}.Analyze(12, transcript, nil)

	if math.Abs(got.SpeechRate-150) > 1e-9 {
		t.Errorf("SpeechRate = %v, want 150", got.SpeechRate)
	}
	// No word timings: silence is indistinguishable from speech.
	if got.PauseRatio != 1 {
		t.Errorf("PauseRatio without timings = %v, want 1", got.PauseRatio)
	}
}

func TestTimingAnalyzer_PausesAndConfidence(t *testing.T) {
	words := []audio.Word{
		{Text: "hello", Start: 1.5, End: 2.0, Probability: 0.9}, // 1.5s leading silence
		{Text: "there", Start: 2.1, End: 2.6, Probability: 0.8},
		{Text: "friend", Start: 4.0, End: 4.5, Probability: 0.7}, // 1.4s gap
	}
	got := audio.TimingAnalyzer{}.Analyze(10, "hello there friend", words)

	// speech time = 1.5s of 10s → pause ratio 0.85
	if math.Abs(got.PauseRatio-0.85) > 1e-9 {
		t.Errorf("PauseRatio = %v, want 0.85", got.PauseRatio)
	}
	// leading 1.5s + mid 1.4s + trailing 5.5s
	if got.LongPauses != 3 {
		t.Errorf("LongPauses = %d, want 3", got.LongPauses)
	}
	if math.Abs(got.PronunciationConfidence-0.8) > 1e-9 {
		t.Errorf("PronunciationConfidence = %v, want 0.8", got.PronunciationConfidence)
	}
}

func TestTimingAnalyzer_ShortGapsNotCounted(t *testing.T) {
	words := []audio.Word{
		{Start: 0.0, End: 1.0, Probability: 1},
		{Start: 1.5, End: 2.5, Probability: 1}, // 0.5s gap, under threshold
	}
	got := audio.TimingAnalyzer{}.Analyze(3, "two words", words)

	if got.LongPauses != 0 {
		t.Errorf("LongPauses = %d, want 0", got.LongPauses)
	}
}

package evaluation

import "strings"

// WritingQualityCheck is the pre-LLM sanity check on an essay: an empty or
// far-too-short submission auto-fails task achievement, so there is no point
// spending a slow, possibly paid call on it.
type WritingQualityCheck struct {
	WordCount    int  `json:"word_count"`
	MinWords     int  `json:"min_words"`
	MeetsMinimum bool `json:"meets_minimum"`
	IsEmpty      bool `json:"is_empty"`
}

// CheckWritingQuality word-counts the essay against the task minimum
// (150 for Task 1, 250 for Task 2). No LLM call.
func CheckWritingQuality(essayText string, taskType int) WritingQualityCheck {
	wordCount := countWords(essayText)
	minWords := 250
	if taskType == 1 {
		minWords = 150
	}
	return WritingQualityCheck{
		WordCount:    wordCount,
		MinWords:     minWords,
		MeetsMinimum: wordCount >= minWords,
		IsEmpty:      wordCount == 0,
	}
}

func countWords(text string) int {
	return len(strings.Fields(text))
}

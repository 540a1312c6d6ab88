package evaluation

import "fmt"

// CriterionScore is one IELTS criterion judgment: a 0-9 band score plus the
// examiner's feedback for that criterion. Immutable once produced.
type CriterionScore struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

func (c CriterionScore) validate(name string) error {
	if c.Score < 0 || c.Score > 9 {
		return fmt.Errorf("%s score %.2f outside band range 0-9", name, c.Score)
	}
	return nil
}

// ContentEvaluation is the canonical speaking evaluation: four criterion
// scores plus an overall examiner summary.
type ContentEvaluation struct {
	Coherence        CriterionScore `json:"coherence"`
	LexicalResource  CriterionScore `json:"lexical_resource"`
	GrammaticalRange CriterionScore `json:"grammatical_range"`
	TaskResponse     CriterionScore `json:"task_response"`
	OverallFeedback  string         `json:"overall_feedback"`
}

// Validate checks that every criterion score is within the 0-9 band range.
func (e *ContentEvaluation) Validate() error {
	for _, c := range []struct {
		name  string
		score CriterionScore
	}{
		{"coherence", e.Coherence},
		{"lexical_resource", e.LexicalResource},
		{"grammatical_range", e.GrammaticalRange},
		{"task_response", e.TaskResponse},
	} {
		if err := c.score.validate(c.name); err != nil {
			return err
		}
	}
	return nil
}

// GrammarCorrection quotes a phrase the candidate actually said, the
// corrected version, and a brief rule explanation.
type GrammarCorrection struct {
	Original    string `json:"original"`
	Corrected   string `json:"corrected"`
	Explanation string `json:"explanation"`
}

// VocabularyUpgrade suggests advanced alternatives for a basic word the
// candidate actually used.
type VocabularyUpgrade struct {
	BasicWord    string   `json:"basic_word"`
	Alternatives []string `json:"alternatives"`
	Example      string   `json:"example"`
}

// PronunciationWarning flags a word from the transcript that non-native
// speakers commonly mispronounce.
type PronunciationWarning struct {
	Word     string `json:"word"`
	Phonetic string `json:"phonetic"`
	Tip      string `json:"tip"`
}

// EnhancedReview extends ContentEvaluation with enrichment lists. All lists
// default to empty — absence is valid, not an error.
type EnhancedReview struct {
	ContentEvaluation
	GrammarCorrections    []GrammarCorrection    `json:"grammar_corrections"`
	VocabularyUpgrades    []VocabularyUpgrade    `json:"vocabulary_upgrades"`
	PronunciationWarnings []PronunciationWarning `json:"pronunciation_warnings"`
	Strengths             []string               `json:"strengths"`
	ImprovementPriorities []string               `json:"improvement_priorities"`
}

// WritingEvaluation is the canonical writing evaluation. Task 1 scores task
// achievement, Task 2 task response; both land in TaskAchievement.
type WritingEvaluation struct {
	TaskAchievement  CriterionScore `json:"task_achievement"`
	Coherence        CriterionScore `json:"coherence"`
	LexicalResource  CriterionScore `json:"lexical_resource"`
	GrammaticalRange CriterionScore `json:"grammatical_range"`
	OverallFeedback  string         `json:"overall_feedback"`
}

// Validate checks that every criterion score is within the 0-9 band range.
func (e *WritingEvaluation) Validate() error {
	for _, c := range []struct {
		name  string
		score CriterionScore
	}{
		{"task_achievement", e.TaskAchievement},
		{"coherence", e.Coherence},
		{"lexical_resource", e.LexicalResource},
		{"grammatical_range", e.GrammaticalRange},
	} {
		if err := c.score.validate(c.name); err != nil {
			return err
		}
	}
	return nil
}

// WritingEnhancedReview extends WritingEvaluation with enrichment lists.
// ParagraphFeedback replaces the speaking-only pronunciation warnings.
type WritingEnhancedReview struct {
	WritingEvaluation
	GrammarCorrections    []GrammarCorrection `json:"grammar_corrections"`
	VocabularyUpgrades    []VocabularyUpgrade `json:"vocabulary_upgrades"`
	ParagraphFeedback     []string            `json:"paragraph_feedback"`
	Strengths             []string            `json:"strengths"`
	ImprovementPriorities []string            `json:"improvement_priorities"`
}

package question

// Question is one IELTS speaking question from the seeded bank.
type Question struct {
	ID          int64  `json:"id"`
	Part        int    `json:"part"` // 1, 2, or 3
	Topic       string `json:"topic"`
	Text        string `json:"text"`
	CueCard     string `json:"cue_card"` // Part 2 only: bullet points
	Source      string `json:"source"`   // e.g. "question_bank", "master_pack"
	Band9Answer string `json:"band9_answer,omitempty"`
}

// MockTestPlan is a full simulated speaking test: a handful of Part 1
// questions, one Part 2 cue card, and Part 3 follow-ups.
type MockTestPlan struct {
	Part1Questions []Question `json:"part1_questions"`
	Part2CueCard   *Question  `json:"part2_cue_card,omitempty"`
	Part3Questions []Question `json:"part3_questions"`
}

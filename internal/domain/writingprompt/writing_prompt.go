package writingprompt

// TestType distinguishes the academic and general-training writing modules.
type TestType string

const (
	TestTypeAcademic TestType = "academic"
	TestTypeGeneral  TestType = "gt"
)

// WritingPrompt is one seeded IELTS writing task.
type WritingPrompt struct {
	ID             int64    `json:"id"`
	TestType       TestType `json:"test_type"`
	TaskType       int      `json:"task_type"` // 1 or 2
	Topic          string   `json:"topic"`
	PromptText     string   `json:"prompt_text"`
	ChartImagePath string   `json:"chart_image_path,omitempty"`
	Task1DataJSON  string   `json:"task1_data_json,omitempty"`
}

// MinWords is the official word-count floor for the prompt's task type.
func (p *WritingPrompt) MinWords() int {
	if p.TaskType == 1 {
		return 150
	}
	return 250
}

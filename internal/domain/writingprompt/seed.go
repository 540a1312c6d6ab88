// internal/domain/writingprompt/seed.go
package writingprompt

// DefaultPrompts is the built-in prompt set used to seed an empty database.
func DefaultPrompts() []WritingPrompt {
	return []WritingPrompt{
		{
			TestType:   TestTypeAcademic,
			TaskType:   1,
			Topic:      "Internet usage",
			PromptText: "The chart below shows the percentage of households with internet access in three countries between 2000 and 2020. Summarise the information by selecting and reporting the main features, and make comparisons where relevant.",
			Task1DataJSON: `{"type":"line","unit":"% of households","series":{` +
				`"Country A":[12,38,67,85,93],` +
				`"Country B":[5,21,49,72,88],` +
				`"Country C":[2,9,26,51,74]},` +
				`"years":[2000,2005,2010,2015,2020]}`,
		},
		{
			TestType:   TestTypeAcademic,
			TaskType:   1,
			Topic:      "Commuting methods",
			PromptText: "The table below shows how workers in one city travelled to work in 1995 and 2015. Summarise the information by selecting and reporting the main features, and make comparisons where relevant.",
			Task1DataJSON: `{"type":"table","unit":"% of workers","rows":{` +
				`"Car":[48,35],"Bus":[26,22],"Bicycle":[9,21],"Walking":[12,14],"Other":[5,8]},` +
				`"years":[1995,2015]}`,
		},
		{
			TestType:   TestTypeAcademic,
			TaskType:   2,
			Topic:      "Education",
			PromptText: "Some people believe that university education should be free for all students, while others think students should pay for their own tuition. Discuss both views and give your own opinion.",
		},
		{
			TestType:   TestTypeAcademic,
			TaskType:   2,
			Topic:      "Environment",
			PromptText: "Many cities are becoming more polluted and crowded. Some say the solution is to encourage people to live in smaller towns. To what extent do you agree or disagree?",
		},
		{
			TestType:   TestTypeGeneral,
			TaskType:   2,
			Topic:      "Work-life balance",
			PromptText: "Nowadays many people work longer hours and have less free time than in the past. What are the causes of this trend, and what can be done about it?",
		},
	}
}

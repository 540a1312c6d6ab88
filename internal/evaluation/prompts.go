package evaluation

import "fmt"

// Rubric prompts shared by both providers. The hosted provider enforces the
// response shape server-side with a schema; the local provider appends the
// flat-key instructions below instead.

const speakingSystemPrompt = `You are an experienced IELTS speaking examiner. Evaluate the candidate's spoken answer on its OWN merits — judge the ideas, vocabulary, grammar, and coherence that the candidate actually produced. Do NOT assess pronunciation or fluency — those are measured separately by audio analysis.

The candidate's transcript is your PRIMARY input. Quote the candidate's actual words when giving feedback. Never invent errors — only cite what the candidate actually said.

Score against official IELTS Band 9 descriptors:

Coherence (Band 9): Speaks fluently with only rare repetition or self-correction. Hesitations are content-related, not language-searching. Topics are fully developed. Look for: signposting ("There are two reasons…", "On the other hand…"), logical flow.

Lexical Resource (Band 9): Flexible and precise vocabulary across topics. Idiomatic language is natural and accurate, not forced. Look for: collocations ("heavy traffic" not "big traffic"), precise word choice, topic-specific vocabulary. Flag basic/vague words the candidate should upgrade.

Grammatical Range (Band 9): Full range of structures used naturally. Consistent accuracy with only occasional slips. Look for: relative clauses, contrast (although/whereas), conditionals. Quote each grammar error from the transcript with the corrected version.

Task Response: Directly addresses the question with developed ideas and examples. Part 1: Should be 15-25s — direct answer + reason + micro-example. Part 3: Should be 35-60s — opinion, reasons, example, counterpoint, summary.

Score each criterion on the IELTS 0-9 band scale (use 0.5 increments). Be fair but rigorous. Base your scores entirely on what the candidate said, not on how closely it matches any reference answer. Any reference answer provided is ONLY for understanding the question's expected scope — ignore its wording, structure, and vocabulary when scoring.`

const speakingEnhancedSystemPrompt = speakingSystemPrompt + `

In addition to scores, provide:

1. Grammar corrections: Quote the EXACT phrase from the transcript that contains the error. Show the corrected version. Explain the rule briefly. Only cite errors the candidate actually made.

2. Vocabulary upgrades: Find basic/common words the candidate ACTUALLY USED in their transcript. Suggest 2-3 advanced alternatives with an example sentence.

3. Pronunciation warnings: List words from the transcript that are commonly mispronounced by non-native speakers, with phonetic guidance (simplified IPA or syllable stress). Include a tip on the common mistake.

4. Strengths: Quote specific phrases from the transcript that demonstrate good language use. Be specific, not generic.

5. Improvement priorities: Reference specific moments in the transcript where the candidate could improve. Give actionable rewrites.`

const writingSystemPrompt = `You are an experienced IELTS Writing examiner. Evaluate the candidate's essay against the official IELTS Writing band descriptors for the 4 criteria.

Score each criterion on the IELTS 0-9 band scale (use 0.5 increments). Be fair but rigorous. Quote specific phrases from the essay when giving feedback.

Task Achievement / Task Response:
- Task 1: Does the response describe the key features accurately? Is there an overview? Is data selected appropriately? Minimum 150 words.
- Task 2: Does the response address all parts of the task? Is the position clear throughout? Are ideas developed and supported with examples? Minimum 250 words.

Coherence & Cohesion (Band 9): Skilful paragraphing. A wide range of cohesive devices used with full flexibility. Information and ideas presented logically with clear progression throughout. Look for: topic sentences, linking words, reference chains, paragraph organisation.

Lexical Resource (Band 9): Full flexibility and precise use of vocabulary. Rare minor errors only as slips. Look for: collocations, academic vocabulary, precision, avoidance of repetition. Flag basic/overused words.

Grammatical Range & Accuracy (Band 9): Full range of structures used accurately and appropriately. Rare minor errors only as slips. Look for: complex sentences, passive voice, relative clauses, conditionals, articles, prepositions.

Word count penalties: Under minimum = max Band 5 for Task Achievement.`

const writingEnhancedSystemPrompt = writingSystemPrompt + `

In addition to scores, provide:

1. Grammar corrections: Quote the EXACT phrase from the essay that contains the error. Show the corrected version. Explain the rule briefly.

2. Vocabulary upgrades: Find basic/overused words the candidate ACTUALLY USED. Suggest 2-3 advanced alternatives with an example sentence.

3. Paragraph feedback: For each paragraph, give a 1-2 sentence analysis of its effectiveness: topic sentence, development, cohesion.

4. Strengths: Quote specific phrases that demonstrate good writing. Be specific.

5. Improvement priorities: Reference specific parts of the essay where the candidate could improve. Give actionable rewrites.`

// Flat JSON schema instructions for the local provider. Small models handle
// flat keys better than nested objects, and concrete example values are
// avoided so the model cannot copy them verbatim.

const speakingFlatSchema = `Return a JSON object with ALL of these keys. Use IELTS 0-9 band scores based on the ACTUAL transcript above.
Score the candidate's OWN answer — do NOT compare it to any reference answer.
Write feedback that references SPECIFIC words and phrases from the candidate's answer.

Required keys:
- "coherence_score": float (0-9, score for coherence and cohesion)
- "coherence_feedback": string (feedback referencing the candidate's actual answer)
- "lexical_resource_score": float (0-9, score for vocabulary range)
- "lexical_resource_feedback": string (feedback about vocabulary used in the answer)
- "grammatical_range_score": float (0-9, score for grammar accuracy)
- "grammatical_range_feedback": string (feedback about grammar in the answer)
- "task_response_score": float (0-9, score for relevance to the question)
- "task_response_feedback": string (feedback about how well the question was answered)
- "overall_feedback": string (2-3 sentence examiner summary of THIS specific answer)`

const speakingEnhancedFlatSchema = speakingFlatSchema + `
- "grammar_corrections": list of objects with keys "original", "corrected", "explanation" (find REAL errors from the transcript)
- "vocabulary_upgrades": list of objects with keys "basic_word", "alternatives" (list of strings), "example" (find basic words the candidate ACTUALLY used)
- "pronunciation_warnings": list of objects with keys "word", "phonetic", "tip" (words from the transcript commonly mispronounced by non-native speakers)
- "strengths": list of strings (specific things done well in THIS answer)
- "improvement_priorities": list of strings (specific actionable tips for THIS answer)`

const writingFlatSchema = `Return a JSON object with ALL of these keys. Use IELTS 0-9 band scores based on the ACTUAL essay above.
Write feedback that quotes SPECIFIC phrases from the candidate's essay.

Required keys:
- "task_achievement_score": float (0-9, score for task achievement / task response)
- "task_achievement_feedback": string (feedback about how well the task was addressed)
- "coherence_score": float (0-9, score for coherence and cohesion)
- "coherence_feedback": string (feedback about organisation and linking)
- "lexical_resource_score": float (0-9, score for vocabulary range)
- "lexical_resource_feedback": string (feedback about vocabulary used in the essay)
- "grammatical_range_score": float (0-9, score for grammar accuracy)
- "grammatical_range_feedback": string (feedback about grammar in the essay)
- "overall_feedback": string (2-3 sentence examiner summary of THIS specific essay)`

const writingEnhancedFlatSchema = writingFlatSchema + `
- "grammar_corrections": list of objects with keys "original", "corrected", "explanation" (find REAL errors from the essay)
- "vocabulary_upgrades": list of objects with keys "basic_word", "alternatives" (list of strings), "example" (find basic words the candidate ACTUALLY used)
- "paragraph_feedback": list of strings (1-2 sentence analysis per paragraph)
- "strengths": list of strings (specific things done well in THIS essay)
- "improvement_priorities": list of strings (specific actionable tips for THIS essay)`

// buildSpeakingUserPrompt renders the user content shared by both providers.
func buildSpeakingUserPrompt(in SpeakingInput) string {
	prompt := fmt.Sprintf(`## IELTS Speaking Part %d

**Question:** %s

**Candidate's Answer (transcribed from speech):**
%s
`, in.Part, in.Question, in.Transcript)

	if in.ReferenceAnswer != "" {
		prompt += fmt.Sprintf(`
**Reference Answer (for question scope only — do NOT compare or score against this):**
%s
`, in.ReferenceAnswer)
	}
	return prompt
}

// buildWritingUserPrompt renders the user content shared by both providers.
func buildWritingUserPrompt(in WritingInput) string {
	taskLabel := "Task 2"
	minWords := 250
	if in.TaskType == 1 {
		taskLabel = "Task 1"
		minWords = 150
	}
	wordCount := countWords(in.EssayText)

	prompt := fmt.Sprintf(`## IELTS Writing %s

**Question/Prompt:**
%s

**Candidate's Essay (%d words, minimum %d):**
%s
`, taskLabel, in.PromptText, wordCount, minWords, in.EssayText)

	if in.ChartDataJSON != "" {
		prompt += fmt.Sprintf("\n**Chart Data (JSON):**\n%s\n", in.ChartDataJSON)
	}
	return prompt
}

package question

import (
	"math/rand"
	"regexp"
	"sort"
	"strings"
)

// AssembleMockTest builds a complete mock test plan from the available
// question pool: Part 1 -> Part 2 -> Part 3.
//
//  1. Pick 2 random Part 1 topics, 4-5 questions from each
//  2. Pick 1 random Part 2 cue card
//  3. Match the cue card to a Part 3 theme via keyword overlap, 4-5 questions
func AssembleMockTest(questions []Question) MockTestPlan {
	var part1, part2, part3 []Question
	for _, q := range questions {
		switch q.Part {
		case 1:
			part1 = append(part1, q)
		case 2:
			part2 = append(part2, q)
		case 3:
			part3 = append(part3, q)
		}
	}

	plan := MockTestPlan{
		Part1Questions: pickByTopic(part1, 2),
	}

	if len(part2) > 0 {
		card := part2[rand.Intn(len(part2))]
		plan.Part2CueCard = &card
		plan.Part3Questions = pickPart3(part3, card)
	}

	return plan
}

// pickByTopic selects up to topicCount random topics and 4-5 questions from
// each.
func pickByTopic(pool []Question, topicCount int) []Question {
	byTopic := groupByTopic(pool)
	topics := sortedKeys(byTopic)
	rand.Shuffle(len(topics), func(i, j int) { topics[i], topics[j] = topics[j], topics[i] })
	if len(topics) > topicCount {
		topics = topics[:topicCount]
	}

	var picked []Question
	for _, topic := range topics {
		picked = append(picked, sampleQuestions(byTopic[topic], 4+rand.Intn(2))...)
	}
	return picked
}

// pickPart3 matches the cue card text against Part 3 themes by keyword
// overlap and samples follow-up questions from the best theme. A random
// theme is used when nothing overlaps.
func pickPart3(part3 []Question, cueCard Question) []Question {
	byTopic := groupByTopic(part3)
	if len(byTopic) == 0 {
		return nil
	}

	cueWords := wordSet(normKey(cueCard.Text))
	bestTheme := ""
	bestOverlap := 0
	for _, theme := range sortedKeys(byTopic) {
		overlap := 0
		for w := range wordSet(normKey(theme)) {
			if cueWords[w] {
				overlap++
			}
		}
		if overlap > bestOverlap {
			bestOverlap = overlap
			bestTheme = theme
		}
	}
	if bestOverlap == 0 {
		themes := sortedKeys(byTopic)
		bestTheme = themes[rand.Intn(len(themes))]
	}

	return sampleQuestions(byTopic[bestTheme], 4+rand.Intn(2))
}

func groupByTopic(pool []Question) map[string][]Question {
	byTopic := make(map[string][]Question)
	for _, q := range pool {
		byTopic[q.Topic] = append(byTopic[q.Topic], q)
	}
	return byTopic
}

func sortedKeys(m map[string][]Question) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sampleQuestions(pool []Question, n int) []Question {
	shuffled := make([]Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)
var spaceRe = regexp.MustCompile(`\s+`)

// normKey normalizes text to a matching key for theme comparison.
func normKey(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = nonWordRe.ReplaceAllString(text, "")
	text = spaceRe.ReplaceAllString(text, " ")
	if len(text) > 80 {
		text = text[:80]
	}
	return text
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		set[w] = true
	}
	return set
}

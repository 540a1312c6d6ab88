// internal/domain/question/seed.go
package question

// DefaultBank is the built-in question set used to seed an empty database.
// Part 2 cue cards carry their Part 3 follow-ups under the same topic so the
// mock test builder can keep a theme across parts.
func DefaultBank() []Question {
	return []Question{
		// Part 1
		{Part: 1, Topic: "Work & Study", Text: "Do you work or are you a student?"},
		{Part: 1, Topic: "Work & Study", Text: "What do you like most about your work or studies?"},
		{Part: 1, Topic: "Work & Study", Text: "Is there anything you would like to change about your daily routine?"},
		{Part: 1, Topic: "Work & Study", Text: "Do you prefer working in the morning or in the evening?"},
		{Part: 1, Topic: "Hometown", Text: "Where is your hometown?"},
		{Part: 1, Topic: "Hometown", Text: "What do you like about living there?"},
		{Part: 1, Topic: "Hometown", Text: "Has your hometown changed much in recent years?"},
		{Part: 1, Topic: "Hometown", Text: "Would you recommend your hometown to visitors?"},
		{Part: 1, Topic: "Free Time", Text: "What do you usually do in your free time?"},
		{Part: 1, Topic: "Free Time", Text: "Do you prefer spending free time alone or with friends?"},
		{Part: 1, Topic: "Free Time", Text: "Have your hobbies changed since you were a child?"},
		{Part: 1, Topic: "Free Time", Text: "Is there a new hobby you would like to take up?"},
		{Part: 1, Topic: "Technology", Text: "How often do you use your phone every day?"},
		{Part: 1, Topic: "Technology", Text: "What apps do you use the most?"},
		{Part: 1, Topic: "Technology", Text: "Do you think you spend too much time online?"},
		{Part: 1, Topic: "Technology", Text: "How has technology changed the way you study or work?"},

		// Part 2
		{Part: 2, Topic: "A Memorable Journey", Text: "Describe a journey you remember well.",
			CueCard: "You should say:\n- where you went\n- who you travelled with\n- what happened during the journey\nand explain why you remember it so well."},
		{Part: 2, Topic: "A Person You Admire", Text: "Describe a person you admire.",
			CueCard: "You should say:\n- who this person is\n- how you know them\n- what they have done\nand explain why you admire them."},
		{Part: 2, Topic: "A Useful Skill", Text: "Describe a skill that took you a long time to learn.",
			CueCard: "You should say:\n- what the skill is\n- how you learned it\n- how long it took\nand explain why it was worth learning."},

		// Part 3
		{Part: 3, Topic: "A Memorable Journey", Text: "How has travel changed compared with fifty years ago?"},
		{Part: 3, Topic: "A Memorable Journey", Text: "Do you think tourism benefits the places people visit?"},
		{Part: 3, Topic: "A Person You Admire", Text: "What qualities make someone a good role model?"},
		{Part: 3, Topic: "A Person You Admire", Text: "Do famous people have a responsibility to behave well in public?"},
		{Part: 3, Topic: "A Useful Skill", Text: "Which skills do you think will matter most in the future?"},
		{Part: 3, Topic: "A Useful Skill", Text: "Is it better to learn skills at school or on the job?"},
	}
}

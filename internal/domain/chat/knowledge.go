package chat

import "strings"

// Rule matches a set of keywords to a canned answer. Matching is
// case-insensitive substring search over the whole input.
type Rule struct {
	Category string
	Keywords []string
	Answer   string
}

// Fallback is returned when no rule matches.
const Fallback = "I didn't quite get that. Ask me about enrollment, sports, " +
	"pricing, the schedule, safety, or our trainers — or leave an " +
	"application and we'll call you back."

// Greeting opens every chat session.
const Greeting = "Hi! I'm the Kinetic Kids assistant. I know everything " +
	"about our classes, trainers and prices. What would you like to know?"

// Rules is the chatbot knowledge base. Order matters: the first matching
// rule wins.
var Rules = []Rule{
	{
		Category: "enrollment",
		Keywords: []string{"enroll", "sign up", "join", "trial", "application"},
		Answer: "To enroll, register an account and leave an application on " +
			"your dashboard — an administrator will confirm it within a day. " +
			"The first trial class is free.",
	},
	{
		Category: "sports",
		Keywords: []string{"sport", "skate", "bmx", "parkour", "trampoline", "climb", "direction"},
		Answer: "We teach five directions: skateboarding, BMX, parkour, " +
			"trampoline and climbing, for kids aged 3 to 16. Every direction " +
			"has beginner, progression and pro groups.",
	},
	{
		Category: "pricing",
		Keywords: []string{"price", "cost", "how much", "subscription", "pay"},
		Answer: "A single class is $25, an 8-class monthly pass is $160, and " +
			"the unlimited pass is $220 per month. Siblings get 15% off.",
	},
	{
		Category: "schedule",
		Keywords: []string{"schedule", "time", "when", "open", "hours"},
		Answer: "Classes run every day from 10:00 to 20:00. Your exact group " +
			"times appear on your dashboard once an application is approved.",
	},
	{
		Category: "safety",
		Keywords: []string{"safe", "danger", "injur", "helmet", "protect"},
		Answer: "Safety first: full protective gear is mandatory and included, " +
			"groups are capped at 8 kids per trainer, and every trainer is " +
			"first-aid certified.",
	},
	{
		Category: "trainers",
		Keywords: []string{"trainer", "coach", "teacher", "instructor"},
		Answer: "Our trainers are former competitive athletes with 5+ years " +
			"of coaching kids. You can read about each of them on the sports " +
			"catalog pages.",
	},
}

// FindAnswer matches input against the knowledge base.
// POST: Returns the first matching rule's answer, or Fallback
func FindAnswer(input string) (answer string, matched bool) {
	q := strings.ToLower(input)
	for _, rule := range Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(q, kw) {
				return rule.Answer, true
			}
		}
	}
	return Fallback, false
}

package controller

import "strings"

// keywordGroup maps a need category to the loading line shown while the
// agent is working. Groups are checked in priority order; the first group
// with any keyword present in the submitted text wins.
type keywordGroup struct {
	keywords []string
	text     string
}

var keywordGroups = []keywordGroup{
	{
		keywords: []string{"housing", "shelter", "homeless", "rent", "eviction", "apartment"},
		text:     "Searching for housing and shelter resources...",
	},
	{
		keywords: []string{"food", "hungry", "meal", "pantry", "grocery", "groceries"},
		text:     "Looking up food assistance programs...",
	},
	{
		keywords: []string{"medical", "doctor", "health", "clinic", "hospital", "medicine", "dental"},
		text:     "Finding medical care options...",
	},
	{
		keywords: []string{"job", "employment", "work", "hiring", "resume", "career"},
		text:     "Searching for employment services...",
	},
	{
		keywords: []string{"legal", "lawyer", "attorney", "court", "immigration", "rights"},
		text:     "Checking legal aid resources...",
	},
	{
		keywords: []string{"mental", "counseling", "therapy", "depression", "anxiety", "crisis"},
		text:     "Finding mental health support...",
	},
	{
		keywords: []string{"bus", "transit", "transportation", "ride", "fare"},
		text:     "Looking into transportation options...",
	},
	{
		keywords: []string{"help", "assistance", "support", "resource", "service"},
		text:     "Gathering resources that can help...",
	},
	{
		keywords: []string{"near me", "nearby", "close to me", "around here"},
		text:     "Searching for services near you...",
	},
}

var genericLoading = [4]string{
	"Looking that up for you...",
	"One moment, checking available resources...",
	"Searching for the right services...",
	"Working on it...",
}

// loadingText picks the placeholder line for a submitted message.
// Matching is case-insensitive; when no group matches, one of four
// generic lines is chosen deterministically from the input length.
func loadingText(input string) string {
	lower := strings.ToLower(input)
	for _, g := range keywordGroups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.text
			}
		}
	}
	return genericLoading[len(input)%4]
}

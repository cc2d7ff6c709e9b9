package controller

import (
	"strings"
	"testing"
)

func TestLoadingText_KeywordGroups(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"I need a SHELTER tonight", "housing"},
		{"where can I get food", "food"},
		{"my tooth hurts, need a dental clinic", "medical"},
		{"looking for a job", "employment"},
		{"I got an eviction notice", "housing"},
		{"need a lawyer", "legal"},
		{"feeling a lot of anxiety lately", "mental health"},
		{"how do I get a bus pass", "transportation"},
		{"can you help", "help"},
		{"what services are nearby", "help"}, // "service" outranks "nearby"
	}

	groupText := map[string]string{
		"housing":        keywordGroups[0].text,
		"food":           keywordGroups[1].text,
		"medical":        keywordGroups[2].text,
		"employment":     keywordGroups[3].text,
		"legal":          keywordGroups[4].text,
		"mental health":  keywordGroups[5].text,
		"transportation": keywordGroups[6].text,
		"help":           keywordGroups[7].text,
		"near me":        keywordGroups[8].text,
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := loadingText(tc.input); got != groupText[tc.want] {
				t.Errorf("loadingText(%q) = %q, want %s group", tc.input, got, tc.want)
			}
		})
	}
}

func TestLoadingText_PriorityOrder(t *testing.T) {
	// Housing is checked before food, so a message matching both
	// gets the housing line.
	got := loadingText("I need food and shelter")
	if got != keywordGroups[0].text {
		t.Errorf("Expected housing group to win, got %q", got)
	}
}

func TestLoadingText_GenericFallback(t *testing.T) {
	inputs := []string{"x", "xy", "xyz", "wxyz", "vwxyz"}
	for _, input := range inputs {
		got := loadingText(input)
		if got != genericLoading[len(input)%4] {
			t.Errorf("loadingText(%q) = %q, want generic %d", input, got, len(input)%4)
		}
	}
}

func TestLoadingText_CaseInsensitive(t *testing.T) {
	if got := loadingText("FOOD"); !strings.Contains(got, "food") {
		t.Errorf("Expected food line for uppercase input, got %q", got)
	}
}

package agent

import "testing"

func TestExtractText(t *testing.T) {
	testCases := []struct {
		name     string
		input    any
		expected string
	}{
		{"plain string", "hello", "hello"},
		{"empty string", "", ""},
		{
			"text parts",
			[]any{
				map[string]any{"type": "text", "text": "first"},
				map[string]any{"type": "text", "text": "second"},
			},
			"first\nsecond",
		},
		{
			"mixed parts skip non-text",
			[]any{
				map[string]any{"type": "image", "url": "x.png"},
				map[string]any{"type": "text", "text": "caption"},
			},
			"caption",
		},
		{
			"nested children",
			map[string]any{
				"children": []any{
					map[string]any{"text": "hello "},
					map[string]any{"children": []any{map[string]any{"text": "world"}}},
				},
			},
			"hello world",
		},
		{"number", 42.0, ""},
		{"nil", nil, ""},
		{"list of non-maps", []any{"a", 1.0}, ""},
		{"map without text or children", map[string]any{"foo": "bar"}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractText(tc.input); got != tc.expected {
				t.Errorf("ExtractText(%v) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

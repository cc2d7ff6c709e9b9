package agent

import "strings"

// ExtractText reduces a decoded message content value to plain text. The
// hosted agent has sent three shapes over time: a bare string, a list of
// {type:"text", text} parts, and rich nodes carrying nested children with
// leaf text. Anything unrecognized reduces to "" rather than an error.
func ExtractText(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case []any:
		var parts []string
		for _, p := range c {
			part, ok := p.(map[string]any)
			if !ok {
				continue
			}
			if t, _ := part["type"].(string); t == "text" {
				if text, ok := part["text"].(string); ok {
					parts = append(parts, text)
				}
			}
		}
		return strings.Join(parts, "\n")
	case map[string]any:
		var leaves []string
		collectLeafText(c, &leaves)
		return strings.Join(leaves, "")
	default:
		return ""
	}
}

func collectLeafText(node map[string]any, out *[]string) {
	if text, ok := node["text"].(string); ok {
		*out = append(*out, text)
	}
	children, ok := node["children"].([]any)
	if !ok {
		return
	}
	for _, child := range children {
		if m, ok := child.(map[string]any); ok {
			collectLeafText(m, out)
		}
	}
}

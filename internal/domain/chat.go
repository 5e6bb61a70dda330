package domain

import "strings"

var DefaultChatTemplates = []string{
	"מה סטטוס ההזמנה שלי?",
	"תוך כמה זמן יגיע נהג?",
	"אני רוצה להחליף מכולה",
	"אני רוצה לפנות מכולה",
}

// ResolveChatTemplates keeps the non-blank server templates, falling back to the built-in
// catalog when none remain.
func ResolveChatTemplates(server []string) []string {
	templates := make([]string, 0, len(server))
	for _, template := range server {
		if trimmed := strings.TrimSpace(template); trimmed != "" {
			templates = append(templates, trimmed)
		}
	}

	if len(templates) == 0 {
		return append([]string(nil), DefaultChatTemplates...)
	}

	return templates
}

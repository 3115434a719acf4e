package naming

import (
	"strings"
)

// Truncate elides a label to at most max visible characters. The elided
// form is exactly max characters long, ellipsis included. Truncation is
// rune-aware so multi-byte labels never split mid-character.
func Truncate(label string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(label)
	if len(runes) <= max {
		return label
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// DisplayLabel normalizes a resolved host name into a map label: trailing
// dot stripped, lowercased, and reduced to the first hostname label when
// the value looks like an FQDN.
func DisplayLabel(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return "", false
	}
	name = strings.ToLower(name)

	display := name
	if strings.Contains(display, ".") && !strings.ContainsAny(display, " \t") {
		if first, _, ok := strings.Cut(display, "."); ok && first != "" {
			display = first
		}
	}
	if !looksHostnameLabel(display) {
		return "", false
	}
	return display, true
}

func looksHostnameLabel(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

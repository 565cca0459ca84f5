package genai

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls the first valid JSON document out of free-form model
// output. Models often wrap JSON in prose or markdown fences; the cascade
// tries the raw text, then a fenced block, then the outermost object or
// array span. ok is false when no candidate validates.
func ExtractJSON(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if json.Valid([]byte(s)) {
		return s, true
	}
	if fenced, ok := fencedBlock(s); ok && json.Valid([]byte(fenced)) {
		return fenced, true
	}
	for _, candidate := range spans(s) {
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}
	return "", false
}

func fencedBlock(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start == -1 {
		return "", false
	}
	rest := s[start+3:]
	if nl := strings.Index(rest, "\n"); nl != -1 {
		// drop the language hint on the fence line
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// spans lists the outermost object and array slices, trying whichever opener
// appears first in the text.
func spans(s string) []string {
	obj := span(s, '{', '}')
	arr := span(s, '[', ']')
	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')
	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		return append(arr, obj...)
	}
	return append(obj, arr...)
}

func span(s string, opener, closer byte) []string {
	start := strings.IndexByte(s, opener)
	end := strings.LastIndexByte(s, closer)
	if start == -1 || end <= start {
		return nil
	}
	return []string{s[start : end+1]}
}

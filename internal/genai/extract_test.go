package genai

import "testing"

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"bare array", `[1,2,3]`, `[1,2,3]`, true},
		{"fenced block", "Sure!\n```json\n{\"a\": 1}\n```\nDone.", `{"a": 1}`, true},
		{"fence without hint", "```\n[1, 2]\n```", `[1, 2]`, true},
		{"object in prose", `Here you go: {"dest": "Banff"} hope it helps`, `{"dest": "Banff"}`, true},
		{"array in prose", `The results are [{"id": 1}, {"id": 2}] as requested`, `[{"id": 1}, {"id": 2}]`, true},
		{"nothing parseable", "I could not produce that.", "", false},
		{"empty", "   ", "", false},
		{"broken braces", `{"a": `, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractJSON(tc.raw)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

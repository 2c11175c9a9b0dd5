package markov

import (
	"reflect"
	"strings"
	"testing"
)

func TestDefaultSanitize(t *testing.T) {
	s := NewDefaultSanitizer()

	testCases := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "plain text",
			raw:      "The fox jumped over the dog.",
			expected: []string{"The", "fox", "jumped", "over", "the", "dog."},
		},
		{
			name:     "urls and escaped ampersands are noise",
			raw:      "Check https://example.com/x now &amp; go",
			expected: []string{"Check", "now", "go"},
		},
		{
			name:     "all url schemes",
			raw:      "a http://x b https://y c ftp://z d ftps://w e",
			expected: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:     "mentions and hashtags are vocabulary",
			raw:      "shoutout to @friend for the #tips",
			expected: []string{"shoutout", "to", "@friend", "for", "the", "#tips"},
		},
		{
			name:     "non-ascii bytes are deleted not substituted",
			raw:      "café — résumé",
			expected: []string{"caf", "rsum"},
		},
		{
			name:     "whitespace runs collapse",
			raw:      "  a \t b \n\n c  ",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "sentinel literals are stripped",
			raw:      "before <SOC> middle <EOC> after",
			expected: []string{"before", "middle", "after"},
		},
		{
			name:     "empty input",
			raw:      "",
			expected: []string{},
		},
		{
			name:     "only noise",
			raw:      " https://example.com &amp; éè ",
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Sanitize(tc.raw)
			if err != nil {
				t.Fatalf("Sanitize(%q) returned error: %v", tc.raw, err)
			}
			if len(got) == 0 && len(tc.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Sanitize(%q) = %v, want %v", tc.raw, got, tc.expected)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	s := NewDefaultSanitizer()

	inputs := []string{
		"The fox jumped over the dog.",
		"Check https://example.com/x now &amp; go",
		"shoutout to @friend for the #tips",
	}
	for _, raw := range inputs {
		first, _ := s.Sanitize(raw)
		second, _ := s.Sanitize(strings.Join(first, " "))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("re-sanitizing %q changed tokens: %v != %v", raw, second, first)
		}
	}
}

func TestSanitizeOptions(t *testing.T) {
	s := NewDefaultSanitizer(
		WithNoisePattern(`RT\b`),
		WithNoisePattern(`@\S+`),
	)

	got, err := s.Sanitize("RT @someone this still counts")
	if err != nil {
		t.Fatalf("Sanitize failed: %v", err)
	}
	want := []string{"this", "still", "counts"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sanitize with noise patterns = %v, want %v", got, want)
	}
}

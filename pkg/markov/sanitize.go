package markov

import (
	"regexp"
	"strings"
)

// Sanitizer is an interface that defines the contract for cleaning and
// tokenizing one raw text sample before ingestion. This allows the core
// model logic to be independent of the specific cleanup policy.
//
// Implementations must return tokens with no embedded whitespace. A nil
// error with zero tokens is valid and means the sample carried no usable
// text. An error marks the sample as unrecoverable; callers driving a
// batch should skip it and continue.
type Sanitizer interface {
	Sanitize(raw string) ([]string, error)
}

// DefaultSanitizer is the default implementation of the Sanitizer
// interface, tuned for scraped social-media text. It coerces input to
// printable ASCII, strips HTML-escaped ampersands and scheme-prefixed
// URLs, and splits on whitespace runs. @mentions and #hashtags are kept
// verbatim as real vocabulary. Literal sentinel tokens are also
// stripped, so user text can never collide with SOCToken or EOCToken.
// Its behavior can be customized with functional options.
type DefaultSanitizer struct {
	urlRegex     *regexp.Regexp
	noiseRegexes []*regexp.Regexp
}

// SanitizerOption is a function that configures a DefaultSanitizer.
type SanitizerOption func(*DefaultSanitizer)

// WithURLRegex sets the regex string used to strip URL-like substrings.
// Default: `(?:https?|ftps?)://\S+`
func WithURLRegex(expr string) SanitizerOption {
	return func(s *DefaultSanitizer) {
		s.urlRegex = regexp.MustCompile(expr)
	}
}

// WithNoisePattern adds an extra regex whose matches are deleted after
// URL stripping. May be given multiple times.
func WithNoisePattern(expr string) SanitizerOption {
	return func(s *DefaultSanitizer) {
		s.noiseRegexes = append(s.noiseRegexes, regexp.MustCompile(expr))
	}
}

// NewDefaultSanitizer creates a sanitizer with default settings, which
// can be overridden by providing one or more SanitizerOption functions.
func NewDefaultSanitizer(opts ...SanitizerOption) *DefaultSanitizer {
	s := &DefaultSanitizer{
		urlRegex: regexp.MustCompile(`(?:https?|ftps?)://\S+`),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sanitize cleans raw and splits it into tokens. It never fails on
// well-formed input; bytes outside printable ASCII are deleted rather
// than substituted. The error return exists for the Sanitizer contract
// and is always nil here.
func (s *DefaultSanitizer) Sanitize(raw string) ([]string, error) {
	clean := coerceASCII(raw)
	clean = strings.ReplaceAll(clean, "&amp;", "")
	clean = s.urlRegex.ReplaceAllString(clean, "")
	for _, re := range s.noiseRegexes {
		clean = re.ReplaceAllString(clean, "")
	}
	clean = strings.ReplaceAll(clean, SOCToken, "")
	clean = strings.ReplaceAll(clean, EOCToken, "")
	return strings.Fields(strings.TrimSpace(clean)), nil
}

// coerceASCII deletes every byte outside printable ASCII, keeping
// whitespace so token boundaries survive the pass.
func coerceASCII(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c >= 0x20 && c <= 0x7e) || c == '\t' || c == '\n' || c == '\r' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

package textproc

import (
	"regexp"
	"strings"
)

// Patterns applied by Clean, in application order. The noise-phrase pass runs
// before the allow-list and number passes so the copyright pattern still sees
// the "©" sign and the year.
var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	repeatedPunct     = regexp.MustCompile(`([.!?]){2,}`)
	noisePhrases      = regexp.MustCompile(`(?i)copyright\s*©?\s*\d{4}` +
		`|all rights reserved` +
		`|privacy policy` +
		`|terms of service` +
		`|cookie policy` +
		`|accept cookies` +
		`|we use cookies` +
		`|subscribe to our newsletter` +
		`|follow us on` +
		`|share on social media` +
		`|click here` +
		`|read more` +
		`|learn more` +
		`|skip to content`)
	disallowedChars   = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?;:()\-'"]+`)
	standaloneNumbers = regexp.MustCompile(`\b\d+\b`)
)

// quoteNormaliser maps typographic quotes to their ASCII forms ahead of the
// allow-list pass, which would otherwise drop them.
var quoteNormaliser = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
)

// Clean strips noise from raw page text: embedded URLs, email addresses,
// boilerplate phrases, characters outside the allow-list (word characters,
// whitespace and basic punctuation), standalone numbers, and repeated
// sentence punctuation. All whitespace runs collapse to single spaces.
// Pure function; empty input yields empty output.
func Clean(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = repeatedPunct.ReplaceAllString(text, "$1")
	text = quoteNormaliser.Replace(text)
	text = noisePhrases.ReplaceAllString(text, "")
	text = disallowedChars.ReplaceAllString(text, "")
	text = standaloneNumbers.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

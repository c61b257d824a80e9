package textproc

import "testing"

func TestClean_RemovesURLs(t *testing.T) {
	got := Clean("Visit https://example.com/docs for info")
	if got != "Visit for info" {
		t.Errorf("expected 'Visit for info', got %q", got)
	}
}

func TestClean_RemovesEmails(t *testing.T) {
	got := Clean("Contact support@example.com today")
	if got != "Contact today" {
		t.Errorf("expected 'Contact today', got %q", got)
	}
}

func TestClean_CollapsesWhitespace(t *testing.T) {
	got := Clean("one\t\ttwo\n\nthree   four")
	if got != "one two three four" {
		t.Errorf("expected collapsed whitespace, got %q", got)
	}
}

func TestClean_CollapsesRepeatedPunctuation(t *testing.T) {
	got := Clean("Wait!!! Really??? Yes.")
	if got != "Wait! Really? Yes." {
		t.Errorf("expected collapsed punctuation, got %q", got)
	}
}

func TestClean_KeepsAllowListedCharacters(t *testing.T) {
	got := Clean(`keep.,!?;:()-'" drop©™€`)
	if got != `keep.,!?;:()-'" drop` {
		t.Errorf("expected allow-listed characters only, got %q", got)
	}
}

func TestClean_KeepsUnicodeLetters(t *testing.T) {
	in := "café naïve 中文 text here ok"
	if got := Clean(in); got != in {
		t.Errorf("expected unicode letters to survive, got %q", got)
	}
}

func TestClean_RemovesStandaloneNumbers(t *testing.T) {
	got := Clean("release 42 of py3k")
	if got != "release  of py3k" {
		t.Errorf("expected standalone numbers removed, got %q", got)
	}
}

func TestClean_StripsCopyrightNotice(t *testing.T) {
	got := Clean("Copyright © 2024 Example Corp")
	if got != "Example Corp" {
		t.Errorf("expected copyright notice stripped, got %q", got)
	}
}

func TestClean_StripsBoilerplatePhrases(t *testing.T) {
	got := Clean("We use cookies on this site. Subscribe to our newsletter for updates.")
	if got != "on this site.  for updates." {
		t.Errorf("expected boilerplate stripped, got %q", got)
	}
}

func TestClean_BoilerplateCaseInsensitive(t *testing.T) {
	got := Clean("see the PRIVACY POLICY page")
	if got != "see the  page" {
		t.Errorf("expected case-insensitive phrase match, got %q", got)
	}
}

func TestClean_NormalizesQuotes(t *testing.T) {
	got := Clean("“quoted” and ‘single’")
	if got != `"quoted" and 'single'` {
		t.Errorf("expected ASCII quotes, got %q", got)
	}
}

func TestClean_Empty(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("expected empty output for empty input, got %q", got)
	}
	if got := Clean("   \n\t  "); got != "" {
		t.Errorf("expected empty output for whitespace input, got %q", got)
	}
}

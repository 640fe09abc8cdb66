package normalize

import "testing"

func TestClean_CollapsesBlankRuns(t *testing.T) {
	got := Clean("A\n\n\n\nB\n")
	want := "A\n\nB"
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestClean_RightTrimsLines(t *testing.T) {
	got := Clean("line one   \nline two\t\n")
	want := "line one\nline two"
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestClean_PreservesLeadingIndentation(t *testing.T) {
	got := Clean("heading\n    indented code\n")
	want := "heading\n    indented code"
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestClean_WhitespaceOnlyLinesCountAsBlank(t *testing.T) {
	got := Clean("A\n   \n\t\nB")
	want := "A\n\nB"
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestClean_StripsSurroundingBlankLines(t *testing.T) {
	got := Clean("\n\n\nbody text\n\n\n")
	want := "body text"
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestClean_EmptyInput(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("Clean(\"\") = %q, want empty", got)
	}
	if got := Clean("\n\n\n"); got != "" {
		t.Errorf("Clean(blank lines) = %q, want empty", got)
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"A\n\n\n\nB\n",
		"   leading\n\n\ntrailing   \n\n",
		"single line",
		"\t\n  \n# Title\n\nBody paragraph.\n\n\n\nMore.\n",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

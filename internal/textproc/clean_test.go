package textproc

import "testing"

func TestCleanText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "a\n\n  b\tc", "a b c"},
		{"strips citations", "Einstein[1] was born[23] in Ulm.", "Einstein was born in Ulm."},
		{"strips edit markers", "History[edit] of science", "History of science"},
		{"normalizes curly quotes", "“hello” and ‘world’", `"hello" and 'world'`},
		{"trims", "  padded  ", "padded"},
		{"empty", "", ""},
		{
			"combined",
			"The “cat”[1] sat.\n\nIt was[edit] fine.",
			`The "cat" sat. It was fine.`,
		},
	}

	for _, tc := range cases {
		if got := CleanText(tc.in); got != tc.want {
			t.Fatalf("%s: CleanText(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("one two  three\nfour"); got != 4 {
		t.Fatalf("WordCount = %d, want 4", got)
	}
	if got := WordCount("   "); got != 0 {
		t.Fatalf("WordCount on blanks = %d, want 0", got)
	}
}

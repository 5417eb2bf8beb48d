package profanity

import "testing"

func TestCaseInsensitiveSubstring(t *testing.T) {
	f := New([]string{"Spam", "scam"})

	cases := []struct {
		text string
		want bool
	}{
		{"this is SPAM content", true},
		{"no issues here", false},
		{"weirdsPaMmixedin", true},
		{"SCAM", true},
		{"", false},
	}
	for _, tc := range cases {
		if got := f.ContainsBanned(tc.text); got != tc.want {
			t.Errorf("ContainsBanned(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestEmptyListNeverMatches(t *testing.T) {
	f := New(nil)
	if f.ContainsBanned("anything at all") {
		t.Fatal("empty banned set must never match")
	}
}

func TestBlankEntriesDropped(t *testing.T) {
	f := New([]string{"", "  ", "bad"})
	if !f.ContainsBanned("a bad word") {
		t.Fatal("expected match on 'bad'")
	}
	if f.ContainsBanned("clean text") {
		t.Fatal("blank entries must not match everything")
	}
}

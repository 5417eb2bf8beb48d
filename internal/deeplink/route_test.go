package deeplink

import "testing"

func TestRoute(t *testing.T) {
	cases := []struct {
		payload string
		intent  Intent
		id      int64
	}{
		{"view_12", IntentViewComments, 12},
		{"add_7", IntentAddComment, 7},
		{"  add_7  ", IntentAddComment, 7},
		{"", IntentNone, 0},
		{"add_abc", IntentNone, 0},
		{"add_", IntentNone, 0},
		{"add_-3", IntentNone, 0},
		{"add_0", IntentNone, 0},
		{"view_9999999999", IntentViewComments, 9999999999},
		{"delete_3", IntentNone, 0},
		{"view12", IntentNone, 0},
	}
	for _, tc := range cases {
		got := Route(tc.payload)
		if got.Intent != tc.intent || got.ConfessionID != tc.id {
			t.Errorf("Route(%q) = {%v %d}, want {%v %d}",
				tc.payload, got.Intent, got.ConfessionID, tc.intent, tc.id)
		}
	}
}

func TestParsePageNav(t *testing.T) {
	nav, ok := ParsePageNav("3:2")
	if !ok || nav.ConfessionID != 3 || nav.Page != 2 {
		t.Fatalf("ParsePageNav(3:2) = (%+v, %v)", nav, ok)
	}

	for _, bad := range []string{"", "3", "3:2:1", "x:2", "3:y", "-1:2", "0:1"} {
		if _, ok := ParsePageNav(bad); ok {
			t.Errorf("ParsePageNav(%q) accepted, want reject", bad)
		}
	}
}

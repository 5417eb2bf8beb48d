package render

import (
	"strings"
	"testing"

	"github.com/yeabjr51-ship-it/eauf/internal/model"
)

func testRenderer() *Renderer {
	return New("EAU Confession", "eaubot", 4)
}

func TestTotalPages(t *testing.T) {
	// page size 4: 0 comments keep a single empty page, then one page
	// per started block of 4.
	want := []int{1, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5}
	for total := 0; total <= 17; total++ {
		if got := TotalPages(total, 4); got != want[total] {
			t.Errorf("TotalPages(%d, 4) = %d, want %d", total, got, want[total])
		}
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct{ page, total, want int }{
		{0, 3, 1},
		{1, 3, 1},
		{-5, 3, 1},
		{2, 3, 2},
		{3, 3, 3},
		{999, 3, 3},
	}
	for _, tc := range cases {
		if got := ClampPage(tc.page, tc.total); got != tc.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tc.page, tc.total, got, tc.want)
		}
	}
}

func TestChannelPostEscapesText(t *testing.T) {
	body := testRenderer().ChannelPost(3, "a <b> & c")
	if !strings.Contains(body, "a &lt;b&gt; &amp; c") {
		t.Fatalf("confession text not escaped: %q", body)
	}
	if !strings.Contains(body, "EAU Confession #3") {
		t.Fatalf("missing header: %q", body)
	}
	if !strings.HasSuffix(body, "#Other") {
		t.Fatalf("missing trailing tag: %q", body)
	}
}

func TestChannelKeyboard(t *testing.T) {
	kb := testRenderer().ChannelKeyboard(5, 2)
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(kb.InlineKeyboard))
	}
	browse := kb.InlineKeyboard[0][0]
	if browse.Text != "👀 Browse Comments (2)" {
		t.Fatalf("browse text = %q", browse.Text)
	}
	if browse.URL != "https://t.me/eaubot?start=view_5" {
		t.Fatalf("browse url = %q", browse.URL)
	}
	add := kb.InlineKeyboard[1][0]
	if add.URL != "https://t.me/eaubot?start=add_5" {
		t.Fatalf("add url = %q", add.URL)
	}
}

func TestCommentsBodyTruncatesLongComment(t *testing.T) {
	long := strings.Repeat("x", 400)
	body := testRenderer().CommentsBody(Page{
		ConfessionID:   1,
		ConfessionText: "hi",
		Number:         1,
		Total:          1,
		Comments: []model.Comment{
			{ID: 9, Text: long, Avatar: "🦊"},
		},
	})
	if strings.Contains(body, strings.Repeat("x", 251)) {
		t.Fatal("comment not truncated to the display limit")
	}
	if !strings.Contains(body, strings.Repeat("x", 247)+"...") {
		t.Fatal("missing truncation marker")
	}
	if !strings.Contains(body, "🦊 <b>Comment #9</b>") {
		t.Fatalf("missing avatar prefix: %q", body)
	}
}

func TestCommentsKeyboardLastPage(t *testing.T) {
	// 5 comments at page size 4: page 2 is the last page, so only prev
	// and the add-comment link show up.
	kb := testRenderer().CommentsKeyboard(3, 2, 2)
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(kb.InlineKeyboard))
	}
	nav := kb.InlineKeyboard[0]
	if len(nav) != 1 || nav[0].Text != "⬅️ Prev" {
		t.Fatalf("nav row = %+v, want a single prev button", nav)
	}
	if nav[0].Data != "3:1" {
		t.Fatalf("prev payload = %q, want 3:1", nav[0].Data)
	}
}

func TestCommentsKeyboardMiddlePage(t *testing.T) {
	kb := testRenderer().CommentsKeyboard(3, 2, 4)
	nav := kb.InlineKeyboard[0]
	if len(nav) != 2 {
		t.Fatalf("nav buttons = %d, want prev and next", len(nav))
	}
	if nav[0].Data != "3:1" || nav[1].Data != "3:3" {
		t.Fatalf("nav payloads = %q, %q", nav[0].Data, nav[1].Data)
	}
}

func TestCommentsKeyboardSinglePage(t *testing.T) {
	kb := testRenderer().CommentsKeyboard(3, 1, 1)
	if len(kb.InlineKeyboard) != 1 {
		t.Fatalf("rows = %d, want only the add-comment row", len(kb.InlineKeyboard))
	}
	if kb.InlineKeyboard[0][0].URL == "" {
		t.Fatal("add-comment button must be a URL deep link")
	}
}

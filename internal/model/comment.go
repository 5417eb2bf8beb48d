package model

// Comment is a threaded reply attached to a confession. The avatar glyph
// is assigned randomly at creation time and stays fixed afterwards.
type Comment struct {
	ID           int64  `db:"id"`
	ConfessionID int64  `db:"confession_id"`
	Text         string `db:"text"`
	Avatar       string `db:"avatar"`
	Timestamp    int64  `db:"timestamp"`
}

// Package model contains the domain entities shared by storage and services.
package model

// Confession is an anonymously submitted text item intended for the
// public channel. AuthorID is kept for rate limiting and is never shown
// to readers.
type Confession struct {
	ID               int64  `db:"id"`
	Text             string `db:"text"`
	Timestamp        int64  `db:"timestamp"`
	ChannelMessageID *int64 `db:"channel_message_id"`
	AuthorID         int64  `db:"author_id"`
}

// Published reports whether the confession has been posted to the channel.
func (c *Confession) Published() bool {
	return c.ChannelMessageID != nil && *c.ChannelMessageID != 0
}

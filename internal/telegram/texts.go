package telegram

import "fmt"

const (
	btnConfess = "📝 Confess"
	btnBrowse  = "👀 Browse Confessions"

	msgHelp           = "Use the buttons in the channel to interact with confessions."
	msgConfessPrompt  = "Send your confession now."
	msgBrowsePrompt   = "Browse confessions:"
	msgSendComment    = "Send your comment:"
	msgSessionExpired = "Session expired."
	msgCommentEmpty   = "Comment canceled."
	msgCommentBanned  = "Your comment contains banned words."
	msgCommentAdded   = "Comment added!"

	msgConfessionEmpty  = "Empty confession."
	msgConfessionBanned = "Your confession contains banned words."
	msgSavedLocally     = "Channel ID not configured on server. Confession saved locally."
	msgPublishFailed    = "Bot cannot post in channel."
	msgNotFound         = "Confession not found."
)

func welcomeText(confessionName string) string {
	return fmt.Sprintf("Welcome to %s — send an anonymous confession and I'll post it.", confessionName)
}

func confessionWaitText(seconds int64) string {
	return fmt.Sprintf("Wait %ds before sending another confession.", seconds)
}

func commentWaitText(seconds int64) string {
	return fmt.Sprintf("Wait %ds before commenting again.", seconds)
}

func postedText(confessionName string, id int64) string {
	return fmt.Sprintf("Posted as %s #%d", confessionName, id)
}

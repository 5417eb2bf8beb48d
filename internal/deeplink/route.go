// Package deeplink parses the /start payload that routes readers from a
// channel post straight into a view-comments or add-comment flow, plus
// the callback payload used for comment page navigation.
package deeplink

import (
	"strconv"
	"strings"
)

// Intent classifies a parsed /start payload.
type Intent int

const (
	// IntentNone means no payload or an unrecognised one; the caller
	// falls back to the plain welcome flow.
	IntentNone Intent = iota
	// IntentViewComments opens the comment pages of a confession.
	IntentViewComments
	// IntentAddComment starts the awaiting-comment session.
	IntentAddComment
)

// Link is a routed deep-link payload.
type Link struct {
	Intent       Intent
	ConfessionID int64
}

// Route parses a /start payload. The grammar is view_<digits> and
// add_<digits>; anything else degrades silently to IntentNone, malformed
// numbers included.
func Route(payload string) Link {
	payload = strings.TrimSpace(payload)
	switch {
	case strings.HasPrefix(payload, "view_"):
		if id, ok := parseID(payload[len("view_"):]); ok {
			return Link{Intent: IntentViewComments, ConfessionID: id}
		}
	case strings.HasPrefix(payload, "add_"):
		if id, ok := parseID(payload[len("add_"):]); ok {
			return Link{Intent: IntentAddComment, ConfessionID: id}
		}
	}
	return Link{Intent: IntentNone}
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// PageNav is a validated page-navigation callback payload.
type PageNav struct {
	ConfessionID int64
	Page         int
}

// ParsePageNav parses the "<confession_id>:<page>" payload carried by
// prev/next buttons. Malformed payloads are rejected, never raised.
func ParsePageNav(payload string) (PageNav, bool) {
	parts := strings.Split(payload, ":")
	if len(parts) != 2 {
		return PageNav{}, false
	}
	id, ok := parseID(parts[0])
	if !ok {
		return PageNav{}, false
	}
	page, err := strconv.Atoi(parts[1])
	if err != nil {
		return PageNav{}, false
	}
	return PageNav{ConfessionID: id, Page: page}, true
}

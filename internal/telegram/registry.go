package telegram

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/yeabjr51-ship-it/eauf/internal/logger"
)

// Command is a bot command with its handler and menu description.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	Hidden      bool
}

// Registry holds bot commands and callback handlers keyed by their
// callback unique.
type Registry struct {
	commands         map[string]Command
	callbacks        map[string]tele.HandlerFunc
	callbackNotFound tele.HandlerFunc
}

// NewRegistry creates an empty Registry with a default unknown-callback
// responder.
func NewRegistry() *Registry {
	return &Registry{
		commands:  make(map[string]Command),
		callbacks: make(map[string]tele.HandlerFunc),
		callbackNotFound: func(c tele.Context) error {
			return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
		},
	}
}

// RegisterCommand adds a new command. Names must carry the slash prefix.
func (r *Registry) RegisterCommand(name string, cmd Command) {
	if name == "" || !strings.HasPrefix(name, "/") || cmd.Handler == nil {
		logger.Warn(context.Background(), "tg.wire", "register.command.skip",
			slog.String("name", name),
		)
		return
	}
	if _, exists := r.commands[name]; exists {
		logger.Warn(context.Background(), "tg.wire", "register.command.duplicate",
			slog.String("name", name),
		)
		return
	}
	r.commands[name] = cmd
}

// RegisterCallback adds a callback handler mapped to its key.
func (r *Registry) RegisterCallback(key string, handler tele.HandlerFunc) {
	if key == "" || handler == nil {
		logger.Warn(context.Background(), "tg.wire", "register.callback.skip",
			slog.String("key", key),
		)
		return
	}
	r.callbacks[key] = handler
}

// Callback returns the handler for a callback key, falling back to the
// unknown-callback responder.
func (r *Registry) Callback(key string) tele.HandlerFunc {
	if h, ok := r.callbacks[key]; ok {
		return h
	}
	return r.callbackNotFound
}

// MenuCommands returns the visible commands for the Telegram menu.
func (r *Registry) MenuCommands() []tele.Command {
	var list []tele.Command
	for name, cmd := range r.commands {
		if cmd.Hidden {
			continue
		}
		list = append(list, tele.Command{Text: name, Description: cmd.Description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

// Commands returns all registered commands keyed by name.
func (r *Registry) Commands() map[string]Command {
	return r.commands
}

// parseCallback parses Telebot's \f<unique>|<payload> callback data
// encoding, returning the key and payload (which may be empty).
func parseCallback(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	parts := strings.SplitN(raw, "|", 2)
	key := strings.TrimSpace(parts[0])
	payload := ""
	if len(parts) == 2 {
		payload = parts[1]
	}
	return key, payload
}

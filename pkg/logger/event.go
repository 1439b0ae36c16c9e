package logger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"time"
)

// EventHandler implements slog.Handler, writing one compact JSON event per
// record: {"level", "message", "time", "data"}.
type EventHandler struct {
	level slog.Level
	out   io.Writer
}

func NewEventHandler(level slog.Level) slog.Handler {
	return &EventHandler{level: level, out: os.Stdout}
}

func (h *EventHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level
}

func (h *EventHandler) Handle(_ context.Context, r slog.Record) error {
	event := map[string]any{
		"level":   r.Level.String(),
		"message": r.Message,
		"time":    r.Time.Format(time.RFC3339Nano),
	}

	if r.NumAttrs() > 0 {
		data := make(map[string]any)
		r.Attrs(func(a slog.Attr) bool {
			data[a.Key] = a.Value.Any()
			return true
		})
		event["data"] = data
	}

	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = h.out.Write(append(b, '\n'))
	return err
}

func (h *EventHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	return &withAttrsHandler{handler: &newH, attrs: attrs}
}

func (h *EventHandler) WithGroup(_ string) slog.Handler {
	// Groups are flattened into the data map, so the name is dropped.
	return h
}

// wrapper that injects static attrs
type withAttrsHandler struct {
	handler *EventHandler
	attrs   []slog.Attr
}

func (h *withAttrsHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.handler.Enabled(ctx, l)
}

func (h *withAttrsHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, a := range h.attrs {
		r.AddAttrs(a)
	}
	return h.handler.Handle(ctx, r)
}

func (h *withAttrsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	all := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &withAttrsHandler{handler: h.handler, attrs: all}
}

func (h *withAttrsHandler) WithGroup(name string) slog.Handler {
	return h
}

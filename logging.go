package strategy

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
)

// PrettyHandlerOptions wraps the standard slog options the way the
// source this was ported from does, leaving room to grow without
// breaking NewPrettyHandler's signature.
type PrettyHandlerOptions struct {
	SlogOpts slog.HandlerOptions
}

// prettyHandler is a development-mode slog.Handler that colors the
// level and prints attrs inline, legible in a terminal; production
// wiring uses slog.NewJSONHandler instead (see NewLogger).
type prettyHandler struct {
	slog.Handler
	out io.Writer
}

// NewPrettyHandler returns a handler suitable for slog.New during
// local development or REPL sessions. It is not meant for production
// log aggregation, which wants NewLogger's JSON handler instead.
func NewPrettyHandler(out io.Writer, opts PrettyHandlerOptions) slog.Handler {
	return &prettyHandler{
		Handler: slog.NewTextHandler(out, &opts.SlogOpts),
		out:     out,
	}
}

func (h *prettyHandler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String()
	switch {
	case r.Level >= slog.LevelError:
		level = color.RedString(level)
	case r.Level >= slog.LevelWarn:
		level = color.YellowString(level)
	case r.Level >= slog.LevelInfo:
		level = color.CyanString(level)
	default:
		level = color.HiBlackString(level)
	}

	fields := ""
	r.Attrs(func(a slog.Attr) bool {
		fields += fmt.Sprintf(" %s=%v", color.HiBlackString(a.Key), a.Value)
		return true
	})

	_, err := fmt.Fprintf(h.out, "%s %s%s\n", level, r.Message, fields)
	return err
}

// NewLogger returns the default slog.Logger for the engine: a pretty
// console handler in dev, a JSON handler otherwise, matching the
// source this was ported from's dev-vs-production handler switch.
func NewLogger(dev bool, out io.Writer, level slog.Level) *slog.Logger {
	if dev {
		return slog.New(NewPrettyHandler(out, PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{Level: level},
		}))
	}
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

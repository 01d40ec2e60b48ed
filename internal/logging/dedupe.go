package logging

import (
	"context"
	"log/slog"
	"slices"
)

var _ slog.Handler = (*DedupeHandler)(nil)

// DedupeHandler keeps one value per attribute key, so a logger passed through several components
// with [slog.Logger.With] doesn't repeat keys like "event" or "route".
// Group names are folded into keys with a '.' separator.
type DedupeHandler struct {
	group string
	attrs []slog.Attr
	impl  slog.Handler
}

func NewDedupeHandler(impl slog.Handler) *DedupeHandler {
	if impl == nil {
		panic("nil implementing handler")
	}
	return &DedupeHandler{impl: impl}
}

func (h *DedupeHandler) key(k string) string {
	if len(h.group) == 0 {
		return k
	}
	return h.group + "." + k
}

func (h *DedupeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.impl.Enabled(ctx, level)
}

func (h *DedupeHandler) Handle(ctx context.Context, record slog.Record) error {
	target := h
	if record.NumAttrs() > 0 {
		recordAttrs := make([]slog.Attr, 0, record.NumAttrs())
		record.Attrs(func(attr slog.Attr) bool {
			recordAttrs = append(recordAttrs, attr)
			return true
		})
		record = slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
		target = h.with(recordAttrs)
	}
	return h.impl.WithAttrs(target.attrs).Handle(ctx, record)
}

func (h *DedupeHandler) with(attrs []slog.Attr) *DedupeHandler {
	cp := &DedupeHandler{
		group: h.group,
		attrs: slices.Clone(h.attrs),
		impl:  h.impl,
	}
	for _, attr := range attrs {
		attr.Key = h.key(attr.Key)
		i := slices.IndexFunc(cp.attrs, func(existing slog.Attr) bool {
			return existing.Key == attr.Key
		})
		if i >= 0 {
			cp.attrs[i] = attr
			continue
		}
		cp.attrs = append(cp.attrs, attr)
	}
	return cp
}

func (h *DedupeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.with(attrs)
}

func (h *DedupeHandler) WithGroup(name string) slog.Handler {
	if len(name) == 0 {
		return h
	}
	return &DedupeHandler{
		group: h.key(name),
		attrs: h.attrs,
		impl:  h.impl,
	}
}

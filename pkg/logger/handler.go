package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	timeColor   = color.New(color.Faint)
	botColor    = color.New(color.FgBlue)
	updateColor = color.New(color.FgMagenta)
	keyColor    = color.New(color.FgCyan)
	errKeyColor = color.New(color.FgRed)

	levelBadges = map[slog.Level]string{
		slog.LevelDebug: color.New(color.BgCyan, color.FgHiWhite).Sprint("DEBUG"),
		slog.LevelInfo:  color.New(color.BgGreen, color.FgHiWhite).Sprint("INFO "),
		slog.LevelWarn:  color.New(color.BgYellow, color.FgHiWhite).Sprint("WARN "),
		slog.LevelError: color.New(color.BgRed, color.FgHiWhite).Sprint("ERROR"),
	}
)

var ansi = regexp.MustCompile("[\u001B\u009B][[\\]()#;?]*(?:(?:(?:[a-zA-Z\\d]*(?:;[a-zA-Z\\d]*)*)?\u0007)|(?:(?:\\d{1,4}(?:;\\d{0,4})*)?[\\dA-PRZcf-ntqry=><~]))")

var bufPool = sync.Pool{
	New: func() any { return &bytes.Buffer{} },
}

// Handler is a human friendly slog.Handler: one colored line per record,
// prefixed with the bot and update id found in the record's context.
type Handler struct {
	groups []string
	attrs  []slog.Attr
	opts   Options

	mu  *sync.Mutex
	out io.Writer
}

func NewHandler(out io.Writer, opts *Options) *Handler {
	if opts == nil {
		opts = DefaultOptions()
	}
	h := &Handler{out: out, mu: &sync.Mutex{}, opts: *opts}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	return h
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	bf := bufPool.Get().(*bytes.Buffer)
	bf.Reset()
	defer bufPool.Put(bf)

	if !r.Time.IsZero() && h.opts.TimeFormat != "" {
		bf.WriteString(timeColor.Sprint(r.Time.Format(h.opts.TimeFormat)))
		bf.WriteByte(' ')
	}

	if bot, ok := BotFromContext(ctx); ok {
		bf.WriteString(botColor.Sprint(bot))
		bf.WriteByte(' ')
	}
	if id, ok := UpdateIDFromContext(ctx); ok {
		bf.WriteString(updateColor.Sprintf("#%d", id))
		bf.WriteByte(' ')
	}

	badge, ok := levelBadges[r.Level]
	if !ok {
		badge = r.Level.String()
	}
	bf.WriteString(badge)
	bf.WriteByte(' ')

	if src := h.source(r.PC); src != "" {
		bf.WriteString(src)
		bf.WriteByte(' ')
	}

	bf.WriteString(h.opts.MsgPrefix)
	bf.WriteString(r.Message)

	writeAttr := func(key string, v slog.Value) {
		c := keyColor
		if strings.Contains(key, "err") {
			c = errKeyColor
		}
		fmt.Fprintf(bf, " %s%s", c.Sprintf("%s=", key), v.String())
	}

	// attrs from WithAttrs carry the group path that was open when they were added
	for _, a := range h.attrs {
		writeAttr(a.Key, a.Value)
	}

	prefix := h.groupPrefix()
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(prefix+a.Key, a.Value)
		return true
	})

	bf.WriteByte('\n')

	out := bf.Bytes()
	if h.opts.NoColor {
		out = ansi.ReplaceAll(out, nil)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.out.Write(out)
	return err
}

func (h *Handler) source(pc uintptr) string {
	if h.opts.SrcFileMode == Nop || pc == 0 {
		return ""
	}

	f, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	file := f.File
	if h.opts.SrcFileMode == ShortFile {
		file = filepath.Base(file)
	}
	return fmt.Sprintf("%s:%d", file, f.Line)
}

func (h *Handler) WithGroup(name string) slog.Handler {
	h2 := *h
	h2.groups = append(append([]string(nil), h.groups...), name)
	return &h2
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := h.groupPrefix()

	h2 := *h
	h2.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, slog.Attr{Key: prefix + a.Key, Value: a.Value})
	}
	return &h2
}

func (h *Handler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

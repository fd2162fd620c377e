package logger

import (
	"log/slog"
	"time"

	"github.com/fatih/color"
)

type SourceFileMode int

const (
	Nop SourceFileMode = iota
	// ShortFile prints the base name, e.g. main.go:69.
	ShortFile
	LongFile
)

type Options struct {
	// Level is the minimum level to log. Defaults to slog.LevelInfo when nil.
	Level slog.Leveler

	TimeFormat  string
	SrcFileMode SourceFileMode

	// MsgPrefix is printed between the header and the message.
	MsgPrefix string

	// NoColor strips ANSI sequences, useful when logs are shipped to a collector.
	NoColor bool
}

func DefaultOptions() *Options {
	return &Options{
		Level:       slog.LevelDebug,
		TimeFormat:  time.DateTime,
		SrcFileMode: ShortFile,
		MsgPrefix:   color.HiWhiteString("| "),
	}
}

package logger

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
)

// ColorizeLevel colors the level attribute of a record by severity.
// Use it as, or within, a ReplaceAttr function.
func ColorizeLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}

	lvl, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}

	var c *color.Color
	switch {
	case lvl >= slog.LevelError:
		c = color.New(color.FgRed, color.Bold)
	case lvl >= slog.LevelWarn:
		c = color.New(color.FgYellow)
	case lvl >= slog.LevelInfo:
		c = color.New(color.FgBlue)
	default:
		c = color.New(color.FgWhite)
	}

	return slog.String(a.Key, c.Sprint(lvl.String()))
}

// TruncSourceAttr shortens the source attribute of a record
// to the file's immediate directory, the file, and the line.
// Use it as, or within, a ReplaceAttr function.
func TruncSourceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.SourceKey {
		return a
	}

	src, ok := a.Value.Any().(*slog.Source)
	if !ok {
		return a
	}

	return slog.String(a.Key, fmt.Sprintf(callerTmpl, immediateFilepath(src.File), src.Line))
}

// DeleteLevelAttr drops the level attribute of a record.
func DeleteLevelAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		return slog.Attr{}
	}

	return a
}

// DeleteMessageAttr drops the message attribute of a record.
func DeleteMessageAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.MessageKey {
		return slog.Attr{}
	}

	return a
}

// immediateFilepath trims fp down to the file and the directory it is in:
//
//	/home/user/my-project/main.go => my-project/main.go
//	/home/user/my-project/internal/internal.go => internal/internal.go
func immediateFilepath(fp string) string {
	dir, file := filepath.Split(fp)
	if dir == "" {
		return file
	}

	return filepath.Join(filepath.Base(dir), file)
}

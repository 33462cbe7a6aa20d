package actions

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// commandCore writes zap entries as workflow commands so the runner can
// surface warnings and errors as annotations.
type commandCore struct {
	zapcore.LevelEnabler
	enc zapcore.Encoder
	out zapcore.WriteSyncer
}

// NewCore returns a zapcore.Core writing workflow commands to out.
func NewCore(out zapcore.WriteSyncer, enab zapcore.LevelEnabler) zapcore.Core {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		ConsoleSeparator: " ",
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
	})
	return &commandCore{LevelEnabler: enab, enc: enc, out: out}
}

// NewLogger builds a logger for the given level name. Unknown names are an
// error; an empty name means info.
func NewLogger(w io.Writer, level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		lvl = parsed
	}
	return zap.New(NewCore(zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))), nil
}

func (c *commandCore) With(fields []zapcore.Field) zapcore.Core {
	enc := c.enc.Clone()
	for _, f := range fields {
		f.AddTo(enc)
	}
	return &commandCore{LevelEnabler: c.LevelEnabler, enc: enc, out: c.out}
}

func (c *commandCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *commandCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	line := strings.TrimRight(buf.String(), "\n")
	buf.Free()

	if _, err := io.WriteString(c.out, formatCommand(ent.Level, line)); err != nil {
		return err
	}
	if ent.Level > zapcore.ErrorLevel {
		return c.out.Sync()
	}
	return nil
}

func (c *commandCore) Sync() error {
	return c.out.Sync()
}

func formatCommand(level zapcore.Level, line string) string {
	switch {
	case level >= zapcore.ErrorLevel:
		return "::error::" + EscapeData(line) + "\n"
	case level == zapcore.WarnLevel:
		return "::warning::" + EscapeData(line) + "\n"
	case level == zapcore.DebugLevel:
		return "::debug::" + EscapeData(line) + "\n"
	default:
		return line + "\n"
	}
}

// EscapeData escapes a workflow command payload.
func EscapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// SetFailed reports a failed run. It is the single place the top-level
// handler records the failure message.
func SetFailed(w io.Writer, err error) {
	fmt.Fprintf(w, "::error::%s\n", EscapeData(err.Error()))
}

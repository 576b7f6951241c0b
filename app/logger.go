package app

import (
	"fmt"
	"strings"

	"clockface/hal"
)

// LineLogger adapts a hal.Logger to engine.Logger, writing one
// "LEVEL msg key=value ..." line per call. Debug lines are dropped unless
// Verbose is set.
type LineLogger struct {
	out     hal.Logger
	Verbose bool
}

func NewLineLogger(out hal.Logger) *LineLogger {
	return &LineLogger{out: out}
}

func (l *LineLogger) Debug(msg any, kv ...any) {
	if l.Verbose {
		l.write("DEBU", msg, kv)
	}
}

func (l *LineLogger) Info(msg any, kv ...any)  { l.write("INFO", msg, kv) }
func (l *LineLogger) Warn(msg any, kv ...any)  { l.write("WARN", msg, kv) }
func (l *LineLogger) Error(msg any, kv ...any) { l.write("ERRO", msg, kv) }

func (l *LineLogger) write(level string, msg any, kv []any) {
	if l == nil || l.out == nil {
		return
	}
	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	fmt.Fprint(&b, msg)
	for i := 0; i < len(kv); i += 2 {
		b.WriteByte(' ')
		fmt.Fprint(&b, kv[i])
		b.WriteByte('=')
		if i+1 < len(kv) {
			fmt.Fprint(&b, kv[i+1])
		} else {
			b.WriteString("MISSING")
		}
	}
	l.out.WriteLineString(b.String())
}

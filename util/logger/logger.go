package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
	TraceLevel = logrus.TraceLevel
)

// Logger represents logrus logger with extra methods to log key-value pairs
type Logger struct {
	*logrus.Logger
}

// New returns new configured logger
func New(lvl logrus.Level) *Logger {
	formatter := prefixed.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.Stamp,
		ForceFormatting: true,
	}
	log := logrus.Logger{
		Out:       os.Stderr,
		Formatter: &formatter,
		Level:     lvl,
		Hooks:     make(logrus.LevelHooks),
	}
	return &Logger{&log}
}

// TraceFi logs <msg> with key-value pairs <kv> at trace level
func (l *Logger) TraceFi(msg string, kv ...any) {
	l.Trace(fields(msg, kv))
}

// DebugFi logs <msg> with key-value pairs <kv> at debug level
func (l *Logger) DebugFi(msg string, kv ...any) {
	l.Debug(fields(msg, kv))
}

// InfoFi logs <msg> with key-value pairs <kv> at info level
func (l *Logger) InfoFi(msg string, kv ...any) {
	l.Info(fields(msg, kv))
}

// WarnFi logs <msg> with key-value pairs <kv> at warning level
func (l *Logger) WarnFi(msg string, kv ...any) {
	l.Warn(fields(msg, kv))
}

// ErrorFi logs <msg> with key-value pairs <kv> at error level
func (l *Logger) ErrorFi(msg string, kv ...any) {
	l.Error(fields(msg, kv))
}

// FatalFi logs <msg> with key-value pairs <kv> at fatal level and exits
func (l *Logger) FatalFi(msg string, kv ...any) {
	l.Fatal(fields(msg, kv))
}

// fields returns <msg> followed by key-value pairs <kv> in format of `msg: k1 "v1", k2 "v2"`.
//
// Value of a key without pair is empty.
func fields(msg string, kv []any) string {
	if len(kv) == 0 {
		return msg
	}
	pairs := make([]string, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		var val any = ""
		if i+1 < len(kv) {
			val = kv[i+1]
		}
		pairs = append(pairs, fmt.Sprintf("%v \"%v\"", kv[i], val))
	}
	return msg + ": " + strings.Join(pairs, ", ")
}

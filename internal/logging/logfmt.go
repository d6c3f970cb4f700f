package logging

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
)

// sink serialises writes from every logger derived from one New call.
type sink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *sink) write(line []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.w.Write(line)
}

type logfmtLogger struct {
	sink   *sink
	level  Level
	prefix []byte
	now    func() time.Time
}

func newLogfmt(s *sink, level Level) *logfmtLogger {
	return &logfmtLogger{sink: s, level: level, now: time.Now}
}

func (l *logfmtLogger) Enabled(level Level) bool { return level >= l.level }

// With pre-encodes fields so derived loggers pay for them once.
func (l *logfmtLogger) With(fields ...Field) Logger {
	prefix := append([]byte(nil), l.prefix...)
	for _, f := range fields {
		prefix = appendField(prefix, f.Key, f.Value)
	}
	return &logfmtLogger{sink: l.sink, level: l.level, prefix: prefix, now: l.now}
}

func (l *logfmtLogger) Debug(msg string, fields ...Field) { l.log(Debug, msg, fields) }
func (l *logfmtLogger) Info(msg string, fields ...Field)  { l.log(Info, msg, fields) }
func (l *logfmtLogger) Warn(msg string, fields ...Field)  { l.log(Warn, msg, fields) }
func (l *logfmtLogger) Error(msg string, fields ...Field) { l.log(Error, msg, fields) }

func (l *logfmtLogger) log(level Level, msg string, fields []Field) {
	if !l.Enabled(level) {
		return
	}
	line := make([]byte, 0, 128+len(l.prefix))
	line = append(line, "ts="...)
	line = l.now().UTC().AppendFormat(line, time.RFC3339Nano)
	line = appendField(line, "level", level.String())
	line = appendField(line, "msg", msg)
	line = append(line, l.prefix...)
	for _, f := range fields {
		line = appendField(line, f.Key, f.Value)
	}
	l.sink.write(append(line, '\n'))
}

func appendField(buf []byte, key string, value any) []byte {
	buf = append(buf, ' ')
	buf = append(buf, key...)
	buf = append(buf, '=')
	switch v := value.(type) {
	case nil:
		return append(buf, "null"...)
	case bool:
		return strconv.AppendBool(buf, v)
	case int:
		return strconv.AppendInt(buf, int64(v), 10)
	case int64:
		return strconv.AppendInt(buf, v, 10)
	case uint64:
		return strconv.AppendUint(buf, v, 10)
	case float64:
		return strconv.AppendFloat(buf, v, 'g', -1, 64)
	case string:
		return appendText(buf, v)
	case []byte:
		return appendText(buf, string(v))
	case error:
		return appendText(buf, v.Error())
	case fmt.Stringer:
		return appendText(buf, v.String())
	}
	return appendText(buf, fmt.Sprint(value))
}

// appendText quotes values a logfmt parser would otherwise split.
func appendText(buf []byte, s string) []byte {
	if s == "" {
		return append(buf, `""`...)
	}
	if strings.ContainsAny(s, " \t\n\r\"=") {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

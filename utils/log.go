package utils

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrUnknownLogLevel = errors.New("unknown log level (known: debug, info, warn, error)")

// LogLevel is the minimum severity written by a ZapLogger. It is set from the
// --log-level flag, the environment and config files alike.
type LogLevel int

var (
	_ pflag.Value              = (*LogLevel)(nil)
	_ encoding.TextUnmarshaler = (*LogLevel)(nil)
)

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var logLevels = [...]struct {
	name string
	zap  zapcore.Level
}{
	DEBUG: {"debug", zapcore.DebugLevel},
	INFO:  {"info", zapcore.InfoLevel},
	WARN:  {"warn", zapcore.WarnLevel},
	ERROR: {"error", zapcore.ErrorLevel},
}

const timeFormat = "15:04:05.000 02/01/2006 -07:00"

func NewLogLevel(level LogLevel) *LogLevel {
	return &level
}

func (l LogLevel) valid() bool {
	return l >= DEBUG && int(l) < len(logLevels)
}

func (l LogLevel) String() string {
	if !l.valid() {
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
	return logLevels[l].name
}

func (l LogLevel) MarshalYAML() (any, error) {
	return l.String(), nil
}

func (l *LogLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// Set parses a level name in either case.
func (l *LogLevel) Set(s string) error {
	s = strings.ToLower(s)
	for level, known := range logLevels {
		if known.name == s {
			*l = LogLevel(level)
			return nil
		}
	}
	return ErrUnknownLogLevel
}

func (l *LogLevel) Type() string {
	return "LogLevel"
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	return l.Set(string(text))
}

type Logger interface {
	SimpleLogger
	pebble.Logger
}

type SimpleLogger interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

type ZapLogger struct {
	*zap.SugaredLogger
}

var _ Logger = (*ZapLogger)(nil)

func NewNopZapLogger() *ZapLogger {
	return &ZapLogger{zap.NewNop().Sugar()}
}

// NewZapLogger returns a console logger writing entries at logLevel and above to stderr.
func NewZapLogger(logLevel LogLevel, colour bool) (*ZapLogger, error) {
	if !logLevel.valid() {
		return nil, ErrUnknownLogLevel
	}

	config := zap.NewProductionConfig()
	config.Sampling = nil
	config.Encoding = "console"
	config.Level = zap.NewAtomicLevelAt(logLevels[logLevel].zap)
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if colour {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Local().Format(timeFormat))
	}

	log, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &ZapLogger{log.Sugar()}, nil
}

// Named returns a logger tagging its entries with component, e.g. "sender" or "l1".
func (l *ZapLogger) Named(component string) *ZapLogger {
	return &ZapLogger{l.SugaredLogger.Named(component)}
}

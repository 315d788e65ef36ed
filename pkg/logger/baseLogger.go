package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type BaseLogger struct {
	mu     sync.Mutex
	prefix string
	writer io.Writer
	sugar  *zap.SugaredLogger
}

// NewLogger пишет в writer (если он задан) и дублирует в stderr.
func NewLogger(writer io.Writer, prefix string) *BaseLogger {
	return &BaseLogger{
		writer: writer,
		prefix: prefix,
		sugar:  newSugar(writer),
	}
}

// Nop returns a logger that discards everything.
func Nop() *BaseLogger {
	return &BaseLogger{sugar: zap.NewNop().Sugar()}
}

func newSugar(writer io.Writer) *zap.SugaredLogger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zapcore.DebugLevel),
	}
	if writer != nil {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(writer), zapcore.DebugLevel))
	}
	return zap.New(zapcore.NewTee(cores...)).Sugar()
}

func (l *BaseLogger) Log(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sugar.Infof(l.format(format), v...)
}

func (l *BaseLogger) Warn(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sugar.Warnf(l.format(format), v...)
}

func (l *BaseLogger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sugar.Errorf(l.format(format), v...)
}

func (l *BaseLogger) format(format string) string {
	if l.prefix == "" {
		return format
	}
	return l.prefix + " " + format
}

func (l *BaseLogger) WithPrefix(extraPrefix string) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	prefix := extraPrefix
	if l.prefix != "" {
		prefix = l.prefix + " " + extraPrefix
	}
	return &BaseLogger{
		writer: l.writer,
		prefix: prefix,
		sugar:  l.sugar,
	}
}

func (l *BaseLogger) SetPrefix(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefix = prefix
}

func (l *BaseLogger) SetWriter(writer io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = writer
	l.sugar = newSugar(writer)
}

// Sync flushes buffered entries.
func (l *BaseLogger) Sync() error {
	return l.sugar.Sync()
}

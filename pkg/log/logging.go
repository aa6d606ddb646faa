package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// init runs the moment this package is imported
func init() {
	SetLogLevel(zapcore.InfoLevel)
}

var logger *zap.SugaredLogger
var logLevel zapcore.Level

// fileLog is nil until SetLogFile is called
var fileLog zapcore.WriteSyncer

func newFileLogger(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     10, //days
		Compress:   false,
	}
}

var consoleDebugging = zapcore.Lock(os.Stdout)
var consoleErrors = zapcore.Lock(os.Stderr)

var encoderConfig = zapcore.EncoderConfig{
	MessageKey:     "m",
	LevelKey:       "l",
	TimeKey:        "t",
	NameKey:        "n",
	CallerKey:      "c",
	StacktraceKey:  "s",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.LowercaseLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

var encoder = zapcore.NewConsoleEncoder(encoderConfig)

type logConfiguration struct {
	logMinLevel zapcore.Level
	logMaxLevel zapcore.Level
}

// Enabled for conformance to interface. Decides which log level to enable for the logger core.
func (l logConfiguration) Enabled(level zapcore.Level) bool {
	return level >= l.logMinLevel && level <= l.logMaxLevel
}

// SetLogLevel sets the log level
func SetLogLevel(level zapcore.Level) {
	cores := []zapcore.Core{
		zapcore.NewCore(encoder, consoleErrors, logConfiguration{logMinLevel: zapcore.ErrorLevel, logMaxLevel: zapcore.FatalLevel}),
		zapcore.NewCore(encoder, consoleDebugging, logConfiguration{logMinLevel: level, logMaxLevel: zapcore.WarnLevel}),
	}
	if fileLog != nil {
		// the file gets everything from the configured level upwards
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileLog,
			logConfiguration{logMinLevel: level, logMaxLevel: zapcore.FatalLevel}))
	}

	l := zap.New(zapcore.NewTee(cores...))
	logger = l.Sugar()
	logLevel = level
}

// SetLogLevelName parses a level name such as "debug" or "WARN". Unknown names keep the current level.
func SetLogLevelName(name string) {
	if name == "" {
		return
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		Warnf("unknown log level %q, keeping %s", name, logLevel)
		return
	}
	SetLogLevel(level)
}

// SetLogFile tees the logger into a rotating file at path. An empty path disables file logging.
func SetLogFile(path string) {
	if path == "" {
		fileLog = nil
	} else {
		// lumberjack.Logger is already safe for concurrent use, so we don't need to lock it.
		fileLog = zapcore.AddSync(newFileLogger(path))
	}
	SetLogLevel(logLevel)
}

func GetLogLevel() zapcore.Level {
	return logLevel
}

// Debugf logs formatted fine-grained informational events that are most useful for debugging
func Debugf(template string, args ...interface{}) {
	logger.Debugf(template, args...)
}

// Debug logs fine-grained informational events that are most useful for debugging
func Debug(args ...interface{}) {
	logger.Debug(args...)
}

// Infof logs formatted informational messages that highlight the progress of the app at coarse-grained level
func Infof(template string, args ...interface{}) {
	logger.Infof(template, args...)
}

// Info logs informational messages that highlight the progress of the app at coarse-grained level
func Info(args ...interface{}) {
	logger.Info(args...)
}

// Infow logs a message with structured key/value context
func Infow(msg string, keysAndValues ...interface{}) {
	logger.Infow(msg, keysAndValues...)
}

// Warnf logs formatted messages about potentially harmful situations
func Warnf(template string, args ...interface{}) {
	logger.Warnf(template, args...)
}

// Warn logs messages about potentially harmful situations
func Warn(args ...interface{}) {
	logger.Warn(args...)
}

// Errorf logs formatted messages about error events that might still allow the application to continue running
func Errorf(template string, args ...interface{}) {
	logger.Errorf(template, args...)
}

// Error logs messages about error events that might still allow the application to continue running
func Error(args ...interface{}) {
	logger.Errorf("%+v", args...)
}

// Fatal logs very severe error events that will presumably lead the app to abort
func Fatal(args ...interface{}) {
	logger.Fatalf("%+v", args...)
}

// Fatalf logs very severe error events that will presumably lead the app to abort
func Fatalf(template string, args ...interface{}) {
	logger.Fatalf(template, args...)
}

// Sync flushes buffered log entries
func Sync() {
	_ = logger.Sync()
}

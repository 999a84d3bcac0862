package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func newLogger(verbose bool, logFile string) *zap.SugaredLogger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.InfoLevel
	}
	var ws zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if logFile != "" {
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), ws, zap.NewAtomicLevelAt(level))
	return zap.New(core).Sugar()
}

func (rcc *rootCmdConfig) logger() *zap.SugaredLogger {
	if rcc.log == nil {
		rcc.log = newLogger(rcc.verbose, rcc.logFile)
	}
	return rcc.log
}

// Logf logs progress information, shown only when verbose.
func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	rcc.logger().Infof(format, a...)
}

// Exit reports the given error, closes any open tree store and ends the
// process with the given code.
func (rcc *rootCmdConfig) Exit(code int, err error) {
	rcc.closeStores()
	l := rcc.logger()
	l.Errorf("%v", err)
	l.Sync()
	if rcc.logFile != "" {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}

package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/2beens/myniu/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	sentryFlushTimeout = 2 * time.Second

	logFileMaxSizeMB  = 50
	logFileMaxBackups = 10
)

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger. The returned func flushes
// buffered sentry events and should be called before exit.
func Setup(params LoggerSetupParams) (flush func()) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))
	logrus.SetOutput(output(params.LogFileName, params.LogToStdout))

	if !params.SentryEnabled {
		return func() {}
	}
	return setupSentry(params)
}

func setupSentry(params LoggerSetupParams) (flush func()) {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry init: %s", err)
		return func() {}
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("sentry set up")

	return func() {
		sentry.Flush(sentryFlushTimeout)
	}
}

// output picks the log destination: stdout only when no file is configured
// or the logs dir cannot be created, otherwise a rotated file (and stdout
// as well if requested).
func output(fileName string, toStdout bool) io.Writer {
	if fileName == "" {
		logrus.Println("writing logs only to STDOUT")
		return os.Stdout
	}

	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	if err := pkg.EnsureParentDir(fileName); err != nil {
		logrus.Errorf("create logs dir for %s, writing logs only to STDOUT: %s", fileName, err)
		return os.Stdout
	}

	rotated := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		Compress:   true,
	}
	if !toStdout {
		return rotated
	}

	logrus.Printf("writing logs to %s and STDOUT", fileName)
	return pkg.NewCombinedWriter(os.Stdout, rotated)
}

// GetLevel parses a log level name, falling back to trace for unknown names.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.TraceLevel
	}
	return parsed
}

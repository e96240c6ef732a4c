package zapup

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// KeyLogLevel sets log level. Valid values: "info", "debug", "warn", "error", "dpanic", "panic", "fatal".
	KeyLogLevel string = "MULTISORT_LOG_LEVEL"
	// KeyLogEncoding sets log output encoding. Valid values: "console", "json".
	KeyLogEncoding string = "MULTISORT_LOG_ENCODING"
	// KeyOutput sets the output path for zap. Valid values: "stdout", "stderr", "<file path>". Defaults to stderr.
	KeyOutput string = "MULTISORT_LOG_OUT"
)

var (
	once   = new(sync.Once)
	logger *zap.Logger
)

// MustRootLogger returns the inited logger or panics.
func MustRootLogger() *zap.Logger {
	if _, err := RootLogger(); err != nil {
		panic(fmt.Sprintf("Root logger failed: %v.", err))
	}
	return logger
}

// RootLogger initiates and returns the root logger considering environment variables: MULTISORT_LOG_LEVEL,
// MULTISORT_LOG_ENCODING, MULTISORT_LOG_OUT.
// Logs go to stderr by default, stdout carries the sorted records.
func RootLogger() (*zap.Logger, error) {
	var err error
	once.Do(func() {
		logger, err = newLogger(
			logLevel(KeyLogLevel, "warn"),
			logEncoding(KeyLogEncoding, "console"),
			logOutput(KeyOutput, "stderr"),
		)
	})
	return logger, err
}

// Reset resets the Root Logger to enable creating it again on changed environment.
func Reset() {
	once = new(sync.Once)
}

func logOutput(key, fallback string) func(*zap.Config) error {
	return func(c *zap.Config) error {
		path := purify(getenvOr(key, fallback))
		c.OutputPaths = []string{path}
		c.ErrorOutputPaths = c.OutputPaths
		return nil
	}
}

func logEncoding(key, fallback string) func(*zap.Config) error {
	return func(c *zap.Config) error {
		c.Encoding = purify(getenvOr(key, fallback))
		return nil
	}
}

func logLevel(key, fallback string) func(*zap.Config) error {
	return func(c *zap.Config) error {
		level := zap.NewAtomicLevel()
		err := level.UnmarshalText([]byte(purify(getenvOr(key, fallback))))
		if err != nil {
			return fmt.Errorf("invalid log level in %s: %w", key, err)
		}
		c.Level = level
		return nil
	}
}

func newLogger(options ...func(*zap.Config) error) (*zap.Logger, error) {
	config := &zap.Config{}
	for _, option := range options {
		err := option(config)
		if err != nil {
			return nil, err
		}
	}

	config.Development = false
	config.EncoderConfig = zap.NewProductionEncoderConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.CallerKey = "caller"
	config.EncoderConfig.StacktraceKey = ""

	return config.Build(zap.AddCaller())
}

func purify(value string) string {
	res := strings.ToLower(value)
	res = strings.TrimSpace(res)
	return res
}

func getenvOr(key, defaultValue string) string {
	res := os.Getenv(key)
	if res == "" {
		res = defaultValue
	}
	return res
}

type key int

var (
	logkey = key(0)
)

// FromContext returns the logger stored in the context or the root logger.
func FromContext(ctx context.Context) *zap.Logger {
	l, ok := ctx.Value(logkey).(*zap.Logger)
	if ok {
		return l
	}
	return MustRootLogger()
}

func PutLogger(ctx context.Context, lg *zap.Logger) context.Context {
	return context.WithValue(ctx, logkey, lg)
}

package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields carries structured key/value context for a log line.
type Fields map[string]interface{}

var logger = newLogger()

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.Lock(os.Stdout), zapcore.InfoLevel)
	return zap.New(core).Sugar()
}

func kvs(fields Fields) []interface{} {
	out := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	logger.Infow(msg, kvs(fields)...)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	logger.Errorw(msg, kvs(fields)...)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	logger.Fatalw(msg, kvs(fields)...)
}

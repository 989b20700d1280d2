package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init configures the global zap logger. In production, logs are JSON-encoded
// and rotated on disk; everywhere else they go to stderr in development format.
func Init(environment string) error {
	var l *zap.Logger

	if environment == "production" {
		rotator := &lumberjack.Logger{
			Filename:   "logs/api.log",
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}

		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotator),
			zap.InfoLevel,
		)
		l = zap.New(core)
	} else {
		var err error
		l, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
	}

	zap.ReplaceGlobals(l)

	return nil
}

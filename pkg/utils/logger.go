package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogName = "catalog-web"

// InitLogger logs to stdout and, when path is set, to a rotated JSON file
// <path>/<name>.log. Debug switches stdout to the console encoder and lowers
// the level; the file stays JSON so it can be shipped as is.
func InitLogger(name, path string, debug bool) (*zap.Logger, error) {
	if name == "" {
		name = defaultLogName
	}

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	stdoutEncoder := zapcore.NewJSONEncoder(encoderConfig(false))
	if debug {
		stdoutEncoder = zapcore.NewConsoleEncoder(encoderConfig(true))
	}
	cores := []zapcore.Core{
		zapcore.NewCore(stdoutEncoder, zapcore.AddSync(os.Stdout), level),
	}

	if path != "" {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("create log dir %s: %w", path, err)
		}

		fileEncoder := zapcore.NewJSONEncoder(encoderConfig(false))
		fileEncoder.AddString("app", name)
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(path, name+".log"),
			MaxSize:    10, // MB
			MaxBackups: 7,
			MaxAge:     28, // days
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(fileEncoder, fileWriter, level))
	}

	logger := zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	return logger, nil
}

func encoderConfig(debug bool) zapcore.EncoderConfig {
	config := zap.NewProductionEncoderConfig()
	if debug {
		config = zap.NewDevelopmentEncoderConfig()
	}
	config.TimeKey = "timestamp"
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	config.CallerKey = "caller"
	config.EncodeCaller = zapcore.ShortCallerEncoder
	return config
}

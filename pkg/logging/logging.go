package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/Jaymon/DateParser/config"
	"github.com/Jaymon/DateParser/pkg/utils"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a no-op until Initialize is called, so library code can log freely.
var (
	Logger      *zap.SugaredLogger = zap.NewNop().Sugar()
	fileHandle  *os.File
	fileCore    *zapcore.Core
	consoleCore *zapcore.Core
)

func Initialize() error {
	if err := Close(); err != nil {
		return err
	}
	consoleLevel := viper.GetInt("logging.console-level")
	if viper.GetBool("debug") {
		consoleLevel = int(zapcore.DebugLevel)
	}
	consoleEnc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	consoleCore = utils.MkPtr(zapcore.NewCore(
		consoleEnc,
		zapcore.Lock(os.Stderr),
		zapcore.Level(consoleLevel),
	))

	fileEncCfg := zap.NewProductionEncoderConfig()
	fileEncCfg.TimeKey = "ts"
	fileEncCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileEncCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	fileEnc := zapcore.NewConsoleEncoder(fileEncCfg)

	logPath := filepath.Join(config.ConfigPath(), "log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	fileHandle = f
	fileSync := zapcore.AddSync(io.Writer(f))

	fileLevel := viper.GetInt("logging.file-level")
	fileCore = utils.MkPtr(zapcore.NewCore(
		fileEnc,
		fileSync,
		zapcore.Level(fileLevel),
	))

	core := zapcore.NewTee(*consoleCore, *fileCore)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	Logger = logger.Sugar()
	return nil
}

func Close() error {
	_ = Logger.Sync()
	if fileHandle != nil {
		err := fileHandle.Close()
		fileHandle = nil
		return err
	}
	return nil
}

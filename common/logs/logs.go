package logs

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"miniroom/common/config"
)

var logger = log.New(os.Stderr)

// InitLog 初始化日志 前缀为服务名 级别取自配置
func InitLog(appName string) {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          appName,
	})
	level := log.InfoLevel
	if config.Conf != nil && config.Conf.Log.Level != "" {
		if l, err := log.ParseLevel(config.Conf.Log.Level); err == nil {
			level = l
		}
	}
	logger.SetLevel(level)
}

func Fatal(format string, values ...any) {
	if len(values) == 0 {
		logger.Fatal(format)
	} else {
		logger.Fatalf(format, values...)
	}
}

func Info(format string, values ...any) {
	if len(values) == 0 {
		logger.Info(format)
	} else {
		logger.Infof(format, values...)
	}
}

func Warn(format string, values ...any) {
	if len(values) == 0 {
		logger.Warn(format)
	} else {
		logger.Warnf(format, values...)
	}
}

func Debug(format string, values ...any) {
	if len(values) == 0 {
		logger.Debug(format)
	} else {
		logger.Debugf(format, values...)
	}
}

func Error(format string, values ...any) {
	if len(values) == 0 {
		logger.Error(format)
	} else {
		logger.Errorf(format, values...)
	}
}

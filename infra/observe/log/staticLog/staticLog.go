package staticLog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log 全局日志, 默认输出到 stderr, 级别 warn
var Log = newLogger(os.Stderr, logrus.WarnLevel)

type Options struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`     // 为空时输出到 stderr
	MaxSize    int    `yaml:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // 天
	Compress   bool   `yaml:"compress"`
}

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05.000",
		QuoteEmptyFields: true,
	})
	return l
}

// Init 按配置重新设置 Log; stderr 作为未配置文件时的输出
func Init(opt Options, stderr io.Writer) (io.Closer, error) {
	level := logrus.WarnLevel
	if opt.Level != "" {
		lv, err := logrus.ParseLevel(opt.Level)
		if err != nil {
			return nil, err
		}
		level = lv
	}

	if opt.File == "" {
		Log = newLogger(stderr, level)
		return nopCloser{}, nil
	}

	rotate := &lumberjack.Logger{
		Filename:   opt.File,
		MaxSize:    opt.MaxSize,
		MaxBackups: opt.MaxBackups,
		MaxAge:     opt.MaxAge,
		Compress:   opt.Compress,
	}
	Log = newLogger(rotate, level)
	return rotate, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

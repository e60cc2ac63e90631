package utils

import (
	"github.com/sirupsen/logrus"
)

// Logger is the process-wide logger. Components hang fields off it rather
// than keeping their own instances.
var Logger = logrus.New()

const TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"

// SetupLogger applies the configured level and format. Unknown values fall
// back to info/text.
func SetupLogger(level, format string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)

	switch format {
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: TimestampFormat,
		})
	default:
		Logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: TimestampFormat,
			FullTimestamp:   true,
		})
	}
}

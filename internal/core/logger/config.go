package logger

import (
	"go.uber.org/zap"

	"clicksoft-api/internal/core/config"
)

// FromConfig builds the process logger from the log section.
func FromConfig(c config.Log) (*zap.Logger, func()) {
	return New(Options{
		Level:       c.Level,
		JSON:        c.JSON,
		AddCaller:   true,
		Development: !c.JSON,
		Rotate: FileRotate{
			Enable:     c.File.Enable,
			Filename:   c.File.Filename,
			MaxSizeMB:  c.File.MaxSizeMB,
			MaxBackups: c.File.MaxBackups,
			MaxAgeDays: c.File.MaxAgeDays,
			Compress:   c.File.Compress,
		},
	})
}

package qtwirl

import (
	"os"

	"github.com/charmbracelet/log"
)

func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "qtwirl",
		Level:  level,
	})
}

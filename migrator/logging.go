package migrator

import (
	"io"
	"log"
)

// Logger receives the migrator's messages. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

func discardLogger() Logger {
	return log.New(io.Discard, "", 0)
}

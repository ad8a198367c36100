package migrate

import (
	"fmt"
	"os"
	"strings"

	"log/slog"
)

// migrationLogger bridges goose's printf-style logger onto slog so migration
// output lands in the same stream as the rest of the service.
type migrationLogger struct {
	logger *slog.Logger
}

func (l migrationLogger) Printf(format string, v ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Info("migration", "detail", strings.TrimRight(fmt.Sprintf(format, v...), "\n"))
}

func (l migrationLogger) Fatalf(format string, v ...any) {
	if l.logger != nil {
		l.logger.Error("migration failed", "detail", fmt.Sprintf(format, v...))
	}
	os.Exit(1)
}

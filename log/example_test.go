package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/scenic/log"
)

func ExampleMake() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
		log.WithTimeLayout("none"),
	)

	logger.Info("batch complete", slog.Int("variables", 4))
	// Output:
	// {"level":"INFO","msg":"batch complete","variables":4}
}

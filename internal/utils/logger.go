package utils

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// InitLogger points the global logger at stderr and tags every entry with a
// per-run ID.
func InitLogger(debug bool) string {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
	}
	runID := uuid.NewString()
	log.Logger = zerolog.New(output).With().Timestamp().Str("run", runID[:8]).Logger()
	return runID
}

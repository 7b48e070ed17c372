package telemetry

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Format "console" is for local
// development; anything else emits one JSON object per line.
func Init(level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout
	if strings.EqualFold(format, "console") {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}

// Info writes an info-level event with the given fields.
func Info(msg string, fields map[string]any) {
	log.Info().Fields(fields).Msg(msg)
}

// Warn writes a warn-level event with the given fields.
func Warn(msg string, fields map[string]any) {
	log.Warn().Fields(fields).Msg(msg)
}

// Error writes an error-level event with the given fields.
func Error(msg string, fields map[string]any) {
	log.Error().Fields(fields).Msg(msg)
}

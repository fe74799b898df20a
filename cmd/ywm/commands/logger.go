package commands

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// newLogger builds the CLI logger from the verbose, log_level and log_format settings.
func newLogger(out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString("log_level")))
	if err != nil || viper.GetString("log_level") == "" {
		level, _ = zerolog.ParseLevel(constants.DefaultLogLevel)
	}

	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}

	switch format := viper.GetString("log_format"); format {
	case constants.LogFormatJSON:
		return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
	case constants.LogFormatConsole, "":
		console := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    !isTerminal(out),
		}

		return zerolog.New(console).Level(level).With().Timestamp().Logger(), nil
	default:
		return zerolog.Nop(), constants.ErrInvalidLogFormat
	}
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	// Path of the rotated log file. Empty disables file output.
	Path   string
	Level  string
	Debug  bool
	Pretty bool
}

// Setup configures the global logger. The file writer is returned so the
// caller can close it on exit; it is nil when Path is empty.
func Setup(opts Options) io.Closer {
	zerolog.SetGlobalLevel(parseLevel(opts.Level))
	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var writers []io.Writer
	if opts.Pretty {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	var file *lumberjack.Logger
	if opts.Path != "" {
		file = &lumberjack.Logger{
			Filename:   opts.Path,
			MaxAge:     14,
			MaxBackups: 10,
		}
		writers = append(writers, file)
	}

	switch len(writers) {
	case 0:
		log.Logger = zerolog.Nop()
	case 1:
		log.Logger = log.Output(writers[0])
	default:
		log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))
	}

	if file == nil {
		return nil
	}
	return file
}

func parseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// Package logger provides the global zerolog logger for the application.
package logger

import (
	"flag"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	debugFlag = flag.Bool("debug", false, "sets log level to debug")
	traceFlag = flag.Bool("trace", false, "sets log level to trace")
	infoFlag  = flag.Bool("info", false, "sets log level to info")
)

// Init configures the global logger from the environment and command line
// flags, and parses the command line. Call it first thing in main:
//
//	logger.Init()
//
// Then, `go run cmd/validator/main.go --debug`
func Init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	if !flag.Parsed() {
		flag.Parse()
	}

	environment := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if environment == "" {
		environment = "prod"
	}

	var logLevel zerolog.Level
	switch environment {
	case "dev", "test":
		logLevel = zerolog.TraceLevel
	case "prod":
		logLevel = zerolog.InfoLevel
	default:
		logLevel = zerolog.InfoLevel
		log.Warn().Str("environment", environment).Msg("Unknown environment, defaulting to info level")
	}

	// Explicit flags beat the environment-derived level.
	if *debugFlag {
		logLevel = zerolog.DebugLevel
	} else if *traceFlag {
		logLevel = zerolog.TraceLevel
	} else if *infoFlag {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)
	log.Debug().Str("environment", environment).Stringer("level", logLevel).Msg("Logger initialized")
}

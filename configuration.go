package sessiondescription

import (
	"github.com/pion/logging"

	"github.com/nostressdev/sessiondescription/sdp"
)

// Configuration controls how a SessionDescription is parsed.
type Configuration struct {
	// Lenient accepts LF line terminators and a missing terminator on the
	// last line.
	Lenient bool

	// LoggerFactory creates the loggers of the envelope and the parser.
	// When nil the pion default factory is used.
	LoggerFactory logging.LoggerFactory
}

func (c Configuration) decoderConfig() sdp.DecoderConfig {
	return sdp.DecoderConfig{
		Lenient:       c.Lenient,
		LoggerFactory: c.LoggerFactory,
	}
}

func (c Configuration) newLogger() logging.LeveledLogger {
	factory := c.LoggerFactory
	if factory == nil {
		factory = logging.NewDefaultLoggerFactory()
	}
	return factory.NewLogger("sessiondescription")
}

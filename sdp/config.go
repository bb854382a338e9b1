package sdp

import (
	"github.com/pion/logging"
)

// DecoderConfig controls how a session description is parsed. The zero
// value is strict: every line, including the last, must end with CRLF.
type DecoderConfig struct {
	// Lenient also accepts LF line terminators and a missing terminator on
	// the last line.
	Lenient bool

	// LoggerFactory is used to create the "sdp" logger. When nil the
	// pion default factory is used.
	LoggerFactory logging.LoggerFactory
}

func (c DecoderConfig) newLogger() logging.LeveledLogger {
	factory := c.LoggerFactory
	if factory == nil {
		factory = logging.NewDefaultLoggerFactory()
	}
	return factory.NewLogger("sdp")
}

// Unmarshal parses data into a Session using c.
func (c DecoderConfig) Unmarshal(data []byte) (*Session, error) {
	l := &lexer{
		baseLexer: newBaseLexer(data, c.Lenient),
		desc:      &Session{},
		log:       c.newLogger(),
		seen:      map[byte]bool{},
	}
	if err := l.run(); err != nil {
		l.log.Debugf("failed to parse session description: %v", err)
		return nil, err
	}
	l.log.Debugf("parsed session description %q: %d time description(s), %d media description(s)",
		l.desc.SessionName, len(l.desc.TimeDescriptions), len(l.desc.MediaDescriptions))
	return l.desc, nil
}

// Unmarshal parses data in strict mode.
func Unmarshal(data []byte) (*Session, error) {
	return DecoderConfig{}.Unmarshal(data)
}

package sdp

import (
	"fmt"
	"io"
	"strings"

	"github.com/pion/logging"
)

// Decoder reads a session description from an io.Reader.
type Decoder struct {
	r      io.Reader
	config DecoderConfig
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// SetLenient accepts LF line terminators and a missing terminator on the
// last line.
func (d *Decoder) SetLenient(lenient bool) {
	d.config.Lenient = lenient
}

// SetLoggerFactory sets the factory used to create the decoder's logger.
func (d *Decoder) SetLoggerFactory(factory logging.LoggerFactory) {
	d.config.LoggerFactory = factory
}

// Decode reads r to EOF and parses it as a single session description.
func (d *Decoder) Decode() (*Session, error) {
	data, err := io.ReadAll(d.r)
	if err != nil {
		return nil, fmt.Errorf("error while reading from reader: %w", err)
	}
	return d.config.Unmarshal(data)
}

// The parser is a set of state functions over the DFA of rfc8866 section 5:
//
//	v o s [i] [u] *e *p [c] *b [z] [k] *a    session header
//	1*( t *r )                               time descriptions
//	[z] [k] *a                               session trailer
//	*( m [i] *c *b [k] *a )                  media descriptions
//
// Each state peeks at the type letter of the next line and either hands
// the line to a field parser or moves on to the next scope. Optional
// fields must keep the order shown, singletons may not repeat.
type stateFn func(l *lexer) (stateFn, error)

type lexer struct {
	baseLexer
	desc *Session
	log  logging.LeveledLogger

	// seen holds every session level letter parsed so far.
	seen map[byte]bool
	// rank is the position of the last optional field in the order of the
	// current scope.
	rank int

	media     *MediaDescription
	mediaSeen map[byte]bool
}

const (
	knownLetters = "vosiuepcbtrzkam"

	headerOrder  = "iuepcbzka"
	trailerOrder = "zka"
	mediaOrder   = "icbka"

	sessionSingletons = "vosiuczk"
	mediaSingletons   = "ik"
)

func (l *lexer) run() error {
	for state := stateFn(sessionStart); state != nil; {
		var err error
		state, err = state(l)
		if err != nil {
			return err
		}
	}
	return nil
}

// nextType returns the type letter of the next line without consuming it.
// It returns false once only whitespace remains.
func (l *lexer) nextType() (byte, bool, error) {
	if l.atEnd() {
		return 0, false, nil
	}
	key := l.value[l.pos]
	if l.pos+1 >= len(l.value) {
		return 0, false, l.errorAt(l.pos+1, UnexpectedEndOfInput, "")
	}
	if l.value[l.pos+1] != '=' || !isAlpha(key) {
		return 0, false, l.errorAt(l.pos, ExpectedLiteral, "<type>=")
	}
	if strings.IndexByte(knownLetters, key) < 0 {
		return 0, false, l.fieldError(UnknownFieldLetter, key, "")
	}
	return key, true, nil
}

func (l *lexer) fieldError(kind ErrorKind, letter byte, expected string) error {
	err := &ParseError{
		Kind:   kind,
		Line:   l.line,
		Column: l.pos - l.lineStart + 1,
		Offset: l.pos,
		Letter: letter,
		Scope:  l.scope,
	}
	if expected != "" {
		err.Expected = []byte(expected)
	}
	return err
}

func sessionStart(l *lexer) (stateFn, error) {
	if l.atEnd() {
		return nil, l.fieldError(UnexpectedEndOfInput, 0, "v")
	}
	return l.requiredField('v', expectOrigin)
}

func expectOrigin(l *lexer) (stateFn, error) {
	return l.requiredField('o', expectSessionName)
}

func expectSessionName(l *lexer) (stateFn, error) {
	return l.requiredField('s', sessionHeader)
}

// requiredField parses one of the leading v=, o= and s= lines.
func (l *lexer) requiredField(want byte, next stateFn) (stateFn, error) {
	key, ok, err := l.nextType()
	switch {
	case err != nil:
		return nil, err
	case !ok:
		return nil, l.fieldError(MissingField, want, "")
	case key == want:
	case l.seen[key]:
		return nil, l.fieldError(DuplicateField, key, "")
	case strings.IndexByte("vos", key) >= 0:
		return nil, l.fieldError(MisorderedField, key, string(want))
	default:
		return nil, l.fieldError(MissingField, want, "")
	}

	if err := unmarshalSessionField(l, want); err != nil {
		return nil, err
	}
	l.seen[want] = true
	return next, nil
}

func sessionHeader(l *lexer) (stateFn, error) {
	key, ok, err := l.nextType()
	switch {
	case err != nil:
		return nil, err
	case !ok, key == 'm':
		return nil, l.fieldError(MissingField, 't', "")
	case key == 't':
		l.log.Tracef("line %d: entering time descriptions", l.line)
		return timeDescription, nil
	}
	if err := l.sessionField(key, headerOrder, "t"); err != nil {
		return nil, err
	}
	return sessionHeader, nil
}

func timeDescription(l *lexer) (stateFn, error) {
	l.scope = ScopeTime
	t, err := l.parseTiming()
	if err != nil {
		return nil, err
	}
	l.desc.TimeDescriptions = append(l.desc.TimeDescriptions, t)
	last := &l.desc.TimeDescriptions[len(l.desc.TimeDescriptions)-1]

	for {
		key, ok, err := l.nextType()
		if err != nil {
			return nil, err
		}
		switch {
		case ok && key == 'r':
			r, err := l.parseRepeatTime()
			if err != nil {
				return nil, err
			}
			last.RepeatTimes = append(last.RepeatTimes, r)
			continue
		case ok && key == 't':
			return timeDescription, nil
		}

		l.scope = ScopeSession
		l.rank = 0
		return sessionTrailer, nil
	}
}

func sessionTrailer(l *lexer) (stateFn, error) {
	key, ok, err := l.nextType()
	switch {
	case err != nil:
		return nil, err
	case !ok:
		return nil, nil
	case key == 'm':
		return mediaDescription, nil
	}
	if err := l.sessionField(key, trailerOrder, "m"); err != nil {
		return nil, err
	}
	return sessionTrailer, nil
}

// sessionField parses an optional session level line, enforcing the order
// given by order. exit is the letter that ends the current scope.
func (l *lexer) sessionField(key byte, order, exit string) error {
	if l.seen[key] && strings.IndexByte(sessionSingletons, key) >= 0 {
		return l.fieldError(DuplicateField, key, "")
	}
	rank := strings.IndexByte(order, key)
	if rank < l.rank {
		return l.fieldError(MisorderedField, key, order[l.rank:]+exit)
	}
	l.rank = rank

	if err := unmarshalSessionField(l, key); err != nil {
		return err
	}
	l.seen[key] = true
	return nil
}

func unmarshalSessionField(l *lexer, key byte) error {
	var err error
	s := l.desc
	switch key {
	case 'v':
		s.Version, err = l.parseVersion()
	case 'o':
		s.Origin, err = l.parseOrigin()
	case 's':
		s.SessionName, err = l.parseSessionName()
	case 'i':
		s.SessionInformation, err = l.parseText('i')
	case 'u':
		s.URI, err = l.parseURI()
	case 'e':
		var email string
		if email, err = l.parseText('e'); err == nil {
			s.Emails = append(s.Emails, email)
		}
	case 'p':
		var phone string
		if phone, err = l.parseText('p'); err == nil {
			s.PhoneNumbers = append(s.PhoneNumbers, phone)
		}
	case 'c':
		var c Connection
		if c, err = l.parseConnection(); err == nil {
			s.Connection = &c
		}
	case 'b':
		var b Bandwidth
		if b, err = l.parseBandwidth(); err == nil {
			s.Bandwidths = append(s.Bandwidths, b)
		}
	case 'z':
		s.TimeZones, err = l.parseTimeZones()
	case 'k':
		s.EncryptionKey, err = l.unmarshalEncryptionKey()
	case 'a':
		var a Attribute
		if a, err = l.parseAttribute(); err == nil {
			s.Attributes = append(s.Attributes, a)
		}
	default:
		err = l.fieldError(MisorderedField, key, "")
	}
	return err
}

func (l *lexer) unmarshalEncryptionKey() (*EncryptionKey, error) {
	line := l.line
	k, err := l.parseEncryptionKey()
	if err != nil {
		return nil, err
	}
	l.log.Warnf("line %d: k= is obsolete (rfc8866 section 5.12), keeping it as deprecated", line)
	return &k, nil
}

func mediaDescription(l *lexer) (stateFn, error) {
	l.scope = ScopeMedia
	l.log.Tracef("line %d: entering media description %d", l.line, len(l.desc.MediaDescriptions)+1)
	m, err := l.parseMediaDescription()
	if err != nil {
		return nil, err
	}
	l.desc.MediaDescriptions = append(l.desc.MediaDescriptions, m)
	l.media = &l.desc.MediaDescriptions[len(l.desc.MediaDescriptions)-1]
	l.mediaSeen = map[byte]bool{}
	l.rank = 0
	return mediaField, nil
}

func mediaField(l *lexer) (stateFn, error) {
	key, ok, err := l.nextType()
	switch {
	case err != nil:
		return nil, err
	case !ok:
		return nil, nil
	case key == 'm':
		return mediaDescription, nil
	}

	rank := strings.IndexByte(mediaOrder, key)
	switch {
	case l.mediaSeen[key] && strings.IndexByte(mediaSingletons, key) >= 0:
		return nil, l.fieldError(DuplicateField, key, "")
	case rank < 0 && l.seen[key] && strings.IndexByte(sessionSingletons, key) >= 0:
		return nil, l.fieldError(DuplicateField, key, "")
	case rank < l.rank:
		return nil, l.fieldError(MisorderedField, key, mediaOrder[l.rank:]+"m")
	}
	l.rank = rank

	if err := unmarshalMediaField(l, key); err != nil {
		return nil, err
	}
	l.mediaSeen[key] = true
	return mediaField, nil
}

func unmarshalMediaField(l *lexer, key byte) error {
	var err error
	m := l.media
	switch key {
	case 'i':
		m.Title, err = l.parseText('i')
	case 'c':
		var c Connection
		if c, err = l.parseConnection(); err == nil {
			m.Connections = append(m.Connections, c)
		}
	case 'b':
		var b Bandwidth
		if b, err = l.parseBandwidth(); err == nil {
			m.Bandwidths = append(m.Bandwidths, b)
		}
	case 'k':
		m.EncryptionKey, err = l.unmarshalEncryptionKey()
	case 'a':
		var a Attribute
		if a, err = l.parseAttribute(); err == nil {
			m.Attributes = append(m.Attributes, a)
		}
	}
	return err
}

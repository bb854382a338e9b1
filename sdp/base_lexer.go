package sdp

import (
	"bytes"
	"math"
	"net/netip"
	"strings"
)

type baseLexer struct {
	value []byte
	pos   int

	line      int
	lineStart int
	letter    byte
	scope     Scope

	// lenient accepts LF terminators and a missing terminator on the
	// last line.
	lenient bool
}

func newBaseLexer(value []byte, lenient bool) baseLexer {
	return baseLexer{value: value, line: 1, lenient: lenient}
}

func (l *baseLexer) errorAt(pos int, kind ErrorKind, value string) error {
	if pos >= len(l.value) {
		switch kind {
		case ExpectedLiteral, ExpectedDigit, ExpectedToken, ExpectedWhitespace:
			kind = UnexpectedEndOfInput
		}
	}
	return &ParseError{
		Kind:   kind,
		Line:   l.line,
		Column: pos - l.lineStart + 1,
		Offset: pos,
		Letter: l.letter,
		Scope:  l.scope,
		Value:  value,
	}
}

func (l *baseLexer) syntaxError(kind ErrorKind) error {
	return l.errorAt(l.pos, kind, "")
}

func (l *baseLexer) eof() bool {
	return l.pos >= len(l.value)
}

func (l *baseLexer) peekByte() (byte, bool) {
	if l.eof() {
		return 0, false
	}
	return l.value[l.pos], true
}

// skipByte consumes ch if it is next.
func (l *baseLexer) skipByte(ch byte) bool {
	if b, ok := l.peekByte(); ok && b == ch {
		l.pos++
		return true
	}
	return false
}

func (l *baseLexer) literal(tag string) error {
	if !bytes.HasPrefix(l.value[l.pos:], []byte(tag)) {
		return l.errorAt(l.pos, ExpectedLiteral, tag)
	}
	l.pos += len(tag)
	return nil
}

// readUint consumes a maximal run of digits that must fit in bits.
func (l *baseLexer) readUint(bits int) (uint64, error) {
	limit := uint64(math.MaxUint64)
	if bits < 64 {
		limit = 1<<uint(bits) - 1
	}

	start := l.pos
	var n uint64
	overflow := false
	for !l.eof() && isDigit(l.value[l.pos]) {
		d := uint64(l.value[l.pos] - '0')
		if n > (limit-d)/10 {
			overflow = true
		}
		n = n*10 + d
		l.pos++
	}
	if l.pos == start {
		return 0, l.syntaxError(ExpectedDigit)
	}
	if overflow {
		return 0, l.errorAt(start, Overflow, string(l.value[start:l.pos]))
	}
	return n, nil
}

func (l *baseLexer) readUint8() (uint8, error) {
	n, err := l.readUint(8)
	return uint8(n), err
}

func (l *baseLexer) readUint16() (uint16, error) {
	n, err := l.readUint(16)
	return uint16(n), err
}

func (l *baseLexer) readUint32() (uint32, error) {
	n, err := l.readUint(32)
	return uint32(n), err
}

func (l *baseLexer) readUint64() (uint64, error) {
	return l.readUint(64)
}

// readDigits returns a run of digits without interpreting it.
func (l *baseLexer) readDigits() (string, error) {
	start := l.pos
	for !l.eof() && isDigit(l.value[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		return "", l.syntaxError(ExpectedDigit)
	}
	return string(l.value[start:l.pos]), nil
}

func (l *baseLexer) readWhile(accept func(byte) bool) string {
	start := l.pos
	for !l.eof() && accept(l.value[l.pos]) {
		l.pos++
	}
	return string(l.value[start:l.pos])
}

func (l *baseLexer) readToken() (string, error) {
	token := l.readWhile(isTokenChar)
	if token == "" {
		return "", l.syntaxError(ExpectedToken)
	}
	return token, nil
}

func (l *baseLexer) readNonWhitespace() (string, error) {
	s := l.readWhile(isVisible)
	if s == "" {
		return "", l.syntaxError(ExpectedToken)
	}
	return s, nil
}

func (l *baseLexer) readWhitespace() error {
	if l.readWhile(isWhitespace) == "" {
		return l.syntaxError(ExpectedWhitespace)
	}
	return nil
}

// readLine returns everything up to the line terminator, which is left
// in place.
func (l *baseLexer) readLine() string {
	return l.readWhile(func(ch byte) bool { return !isNewline(ch) })
}

// lineEnd consumes the terminator of the current line.
func (l *baseLexer) lineEnd() error {
	ch, ok := l.peekByte()
	switch {
	case !ok:
		if !l.lenient {
			return l.syntaxError(UnterminatedLine)
		}
	case ch == '\r':
		if l.pos+1 >= len(l.value) || l.value[l.pos+1] != '\n' {
			return l.errorAt(l.pos, ExpectedLiteral, "\r\n")
		}
		l.pos += 2
	case ch == '\n':
		if !l.lenient {
			return l.errorAt(l.pos, UnterminatedLine, "\n")
		}
		l.pos++
	default:
		return l.errorAt(l.pos, ExpectedLiteral, "\r\n")
	}

	l.line++
	l.lineStart = l.pos
	l.letter = 0
	return nil
}

// atEnd reports whether only whitespace remains.
func (l *baseLexer) atEnd() bool {
	for _, ch := range l.value[l.pos:] {
		if !isWhitespace(ch) && !isNewline(ch) {
			return false
		}
	}
	return true
}

// readAddress reads an address and checks it against addrType. The
// returned IP is invalid when the address is an FQDN.
func (l *baseLexer) readAddress(addrType AddrType) (string, netip.Addr, error) {
	start := l.pos
	s := l.readWhile(func(ch byte) bool { return isVisible(ch) && ch != '/' })
	ip, ok := checkAddress(addrType, s)
	if !ok {
		return "", netip.Addr{}, l.errorAt(start, BadAddress, s)
	}
	return s, ip, nil
}

// readDuration reads digits with an optional d, h, m or s suffix and
// returns seconds.
func (l *baseLexer) readDuration() (uint64, error) {
	start := l.pos
	n, err := l.readUint64()
	if err != nil {
		return 0, err
	}
	ch, _ := l.peekByte()
	mult, ok := unitSeconds[ch]
	if !ok {
		return n, nil
	}
	l.pos++
	if n > math.MaxUint64/mult {
		return 0, l.errorAt(start, Overflow, string(l.value[start:l.pos]))
	}
	return n * mult, nil
}

func (l *baseLexer) readSignedDuration() (int64, error) {
	start := l.pos
	neg := l.skipByte('-')
	n, err := l.readDuration()
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt64 {
		return 0, l.errorAt(start, Overflow, string(l.value[start:l.pos]))
	}
	if neg {
		return -int64(n), nil
	}
	return int64(n), nil
}

var unitSeconds = map[byte]uint64{
	'd': 86400,
	'h': 3600,
	'm': 60,
	's': 1,
}

// checkAddress validates s as an address of addrType: an IP literal of
// that family or an FQDN.
func checkAddress(addrType AddrType, s string) (netip.Addr, bool) {
	if s == "" {
		return netip.Addr{}, false
	}
	numeric := strings.Trim(s, "0123456789.") == ""
	hasColon := strings.IndexByte(s, ':') >= 0
	switch addrType {
	case TypeIPv4:
		if numeric {
			return parseIPv4(s)
		}
		if hasColon {
			return netip.Addr{}, false
		}
	case TypeIPv6:
		if hasColon {
			return parseIPv6(s)
		}
		if numeric {
			return netip.Addr{}, false
		}
	}
	return netip.Addr{}, isFQDN(s)
}

// parseIPv4 parses four dot separated u8 values.
func parseIPv4(s string) (netip.Addr, bool) {
	var octets [4]byte
	for i := range octets {
		if i > 0 {
			if s == "" || s[0] != '.' {
				return netip.Addr{}, false
			}
			s = s[1:]
		}
		n, digits := 0, 0
		for digits < len(s) && isDigit(s[digits]) {
			n = n*10 + int(s[digits]-'0')
			if n > math.MaxUint8 {
				return netip.Addr{}, false
			}
			digits++
		}
		if digits == 0 {
			return netip.Addr{}, false
		}
		octets[i] = byte(n)
		s = s[digits:]
	}
	if s != "" {
		return netip.Addr{}, false
	}
	return netip.AddrFrom4(octets), true
}

// parseIPv6 parses the rfc4291 text form. Zones are not part of it.
func parseIPv6(s string) (netip.Addr, bool) {
	if strings.IndexByte(s, '%') >= 0 {
		return netip.Addr{}, false
	}
	ip, err := netip.ParseAddr(s)
	if err != nil || !ip.Is6() {
		return netip.Addr{}, false
	}
	return ip, true
}

// isFQDN follows rfc8866: 4*(alpha-numeric / "-" / ".").
func isFQDN(s string) bool {
	if len(s) < 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !isAlphaNumeric(ch) && ch != '-' && ch != '.' {
			return false
		}
	}
	return true
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isAlpha(ch byte) bool { return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') }

func isAlphaNumeric(ch byte) bool { return isDigit(ch) || isAlpha(ch) }

func isTokenChar(ch byte) bool {
	return isAlphaNumeric(ch) || strings.IndexByte("!#$%&'*+-.^_`{|}~", ch) >= 0
}

// isVisible matches the bytes of an rfc8866 non-ws-string.
func isVisible(ch byte) bool { return ch > ' ' && ch != 0x7f }

func isNewline(ch byte) bool { return ch == '\n' || ch == '\r' }

func isWhitespace(ch byte) bool { return ch == ' ' || ch == '\t' }

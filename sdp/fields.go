package sdp

import (
	"net/url"
	"strconv"
)

// beginField consumes "<letter>=".
func (l *baseLexer) beginField(letter byte) error {
	l.letter = letter
	return l.literal(string([]byte{letter, '='}))
}

// v=0
// https://tools.ietf.org/html/rfc8866#section-5.1
func (l *baseLexer) parseVersion() (uint8, error) {
	if err := l.beginField('v'); err != nil {
		return 0, err
	}
	start := l.pos
	version, err := l.readUint8()
	if err != nil {
		return 0, err
	}
	if version != 0 {
		return 0, l.errorAt(start, InvalidVersion, strconv.Itoa(int(version)))
	}
	return version, l.lineEnd()
}

// o=<username> <sess-id> <sess-version> <nettype> <addrtype> <unicast-address>
// https://tools.ietf.org/html/rfc8866#section-5.2
func (l *baseLexer) parseOrigin() (Origin, error) {
	var o Origin
	var err error
	if err = l.beginField('o'); err != nil {
		return o, err
	}
	if o.Username, err = l.readNonWhitespace(); err != nil {
		return o, err
	}
	if err = l.readWhitespace(); err != nil {
		return o, err
	}
	if o.SessionID, err = l.readDigits(); err != nil {
		return o, err
	}
	if err = l.readWhitespace(); err != nil {
		return o, err
	}
	if o.SessionVersion, err = l.readUint64(); err != nil {
		return o, err
	}
	if err = l.readWhitespace(); err != nil {
		return o, err
	}
	if o.NetType, o.AddrType, err = l.readNetworkTypes(); err != nil {
		return o, err
	}
	if err = l.readWhitespace(); err != nil {
		return o, err
	}
	if o.UnicastAddress, _, err = l.readAddress(o.AddrType); err != nil {
		return o, err
	}
	return o, l.lineEnd()
}

// readNetworkTypes reads "<nettype> <addrtype>". Only the types registered
// with IANA are accepted.
// https://tools.ietf.org/html/rfc8866#section-8.2.6
func (l *baseLexer) readNetworkTypes() (NetType, AddrType, error) {
	start := l.pos
	nettype, err := l.readToken()
	if err != nil {
		return "", "", err
	}
	if NetType(nettype) != NetworkInternet {
		return "", "", l.errorAt(start, InvalidValue, nettype)
	}
	if err = l.readWhitespace(); err != nil {
		return "", "", err
	}
	start = l.pos
	addrtype, err := l.readToken()
	if err != nil {
		return "", "", err
	}
	switch AddrType(addrtype) {
	case TypeIPv4, TypeIPv6:
	default:
		return "", "", l.errorAt(start, InvalidValue, addrtype)
	}
	return NetType(nettype), AddrType(addrtype), nil
}

// s=<session name>
// https://tools.ietf.org/html/rfc8866#section-5.3
func (l *baseLexer) parseSessionName() (string, error) {
	if err := l.beginField('s'); err != nil {
		return "", err
	}
	start := l.pos
	name := l.readLine()
	if name == "" {
		return "", l.errorAt(start, EmptySessionName, "")
	}
	return name, l.lineEnd()
}

// parseText parses the i=, e=, p= and k= lines, whose value is an rfc8866
// text and must not be empty.
func (l *baseLexer) parseText(letter byte) (string, error) {
	if err := l.beginField(letter); err != nil {
		return "", err
	}
	text := l.readLine()
	if text == "" {
		return "", l.syntaxError(EmptyValue)
	}
	return text, l.lineEnd()
}

// u=<uri>
// https://tools.ietf.org/html/rfc8866#section-5.5
func (l *baseLexer) parseURI() (string, error) {
	if err := l.beginField('u'); err != nil {
		return "", err
	}
	start := l.pos
	uri := l.readLine()
	if uri == "" {
		return "", l.syntaxError(EmptyValue)
	}
	if _, err := url.Parse(uri); err != nil {
		return "", l.errorAt(start, InvalidValue, uri)
	}
	return uri, l.lineEnd()
}

// c=<nettype> <addrtype> <connection-address>
// https://tools.ietf.org/html/rfc8866#section-5.7
func (l *baseLexer) parseConnection() (Connection, error) {
	var c Connection
	var err error
	if err = l.beginField('c'); err != nil {
		return c, err
	}
	if c.NetType, c.AddrType, err = l.readNetworkTypes(); err != nil {
		return c, err
	}
	if err = l.readWhitespace(); err != nil {
		return c, err
	}

	start := l.pos
	address, ip, err := l.readAddress(c.AddrType)
	if err != nil {
		return c, err
	}
	c.Address = address
	multicast := ip.IsValid() && ip.IsMulticast()

	if !l.skipByte('/') {
		// IP4 multicast addresses MUST carry a TTL.
		if c.AddrType == TypeIPv4 && multicast {
			return c, l.errorAt(start, MissingMulticastTTL, address)
		}
		return c, l.lineEnd()
	}

	if ip.IsValid() && !multicast {
		return c, l.errorAt(start, BadAddress, address)
	}
	if c.AddrType == TypeIPv4 {
		ttl, err := l.readUint8()
		if err != nil {
			return c, err
		}
		c.TTL = &ttl
		if !l.skipByte('/') {
			return c, l.lineEnd()
		}
	}
	count, err := l.readUint32()
	if err != nil {
		return c, err
	}
	c.Count = &count
	return c, l.lineEnd()
}

// b=<bwtype>:<bandwidth>
// https://tools.ietf.org/html/rfc8866#section-5.8
func (l *baseLexer) parseBandwidth() (Bandwidth, error) {
	var b Bandwidth
	if err := l.beginField('b'); err != nil {
		return b, err
	}
	bwtype, err := l.readToken()
	if err != nil {
		return b, err
	}
	b.Type = BandwidthType(bwtype)
	if err = l.literal(":"); err != nil {
		return b, err
	}
	if b.Value, err = l.readUint64(); err != nil {
		return b, err
	}
	return b, l.lineEnd()
}

// t=<start-time> <stop-time>
// https://tools.ietf.org/html/rfc8866#section-5.9
func (l *baseLexer) parseTiming() (TimeDescription, error) {
	var t TimeDescription
	var err error
	if err = l.beginField('t'); err != nil {
		return t, err
	}
	if t.Start, err = l.readUint64(); err != nil {
		return t, err
	}
	if err = l.readWhitespace(); err != nil {
		return t, err
	}
	if t.Stop, err = l.readUint64(); err != nil {
		return t, err
	}
	return t, l.lineEnd()
}

// r=<repeat interval> <active duration> <offsets from start-time>
// https://tools.ietf.org/html/rfc8866#section-5.10
func (l *baseLexer) parseRepeatTime() (RepeatTime, error) {
	var r RepeatTime
	var err error
	if err = l.beginField('r'); err != nil {
		return r, err
	}
	if r.Interval, err = l.readDuration(); err != nil {
		return r, err
	}
	if err = l.readWhitespace(); err != nil {
		return r, err
	}
	if r.Active, err = l.readDuration(); err != nil {
		return r, err
	}
	for {
		if err = l.readWhitespace(); err != nil {
			return r, err
		}
		offset, err := l.readDuration()
		if err != nil {
			return r, err
		}
		r.Offsets = append(r.Offsets, offset)
		if ch, ok := l.peekByte(); !ok || !isWhitespace(ch) {
			break
		}
	}
	return r, l.lineEnd()
}

// z=<adjustment time> <offset> <adjustment time> <offset> ....
// https://tools.ietf.org/html/rfc8866#section-5.11
func (l *baseLexer) parseTimeZones() ([]TimeZone, error) {
	if err := l.beginField('z'); err != nil {
		return nil, err
	}
	var zones []TimeZone
	for {
		var z TimeZone
		var err error
		if z.AdjustmentTime, err = l.readUint64(); err != nil {
			return nil, err
		}
		if err = l.readWhitespace(); err != nil {
			return nil, err
		}
		if z.Offset, err = l.readSignedDuration(); err != nil {
			return nil, err
		}
		zones = append(zones, z)
		if ch, ok := l.peekByte(); !ok || !isWhitespace(ch) {
			break
		}
		if err = l.readWhitespace(); err != nil {
			return nil, err
		}
	}
	return zones, l.lineEnd()
}

// k=<method>[:<encryption key>]
// https://tools.ietf.org/html/rfc8866#section-5.12
func (l *baseLexer) parseEncryptionKey() (EncryptionKey, error) {
	value, err := l.parseText('k')
	return EncryptionKey{Value: value}, err
}

// a=<attribute-name>[:<attribute-value>]
// https://tools.ietf.org/html/rfc8866#section-5.13
func (l *baseLexer) parseAttribute() (Attribute, error) {
	var a Attribute
	var err error
	if err = l.beginField('a'); err != nil {
		return a, err
	}
	if a.Name, err = l.readToken(); err != nil {
		return a, err
	}
	if l.skipByte(':') {
		a.Value = l.readLine()
		a.HasValue = true
	}
	return a, l.lineEnd()
}

// m=<media> <port>[/<number of ports>] <proto> <fmt> ...
// https://tools.ietf.org/html/rfc8866#section-5.14
func (l *baseLexer) parseMediaDescription() (MediaDescription, error) {
	var m MediaDescription
	var err error
	if err = l.beginField('m'); err != nil {
		return m, err
	}
	media, err := l.readToken()
	if err != nil {
		return m, err
	}
	m.Media = MediaType(media)
	if err = l.readWhitespace(); err != nil {
		return m, err
	}

	if m.Port, err = l.readUint16(); err != nil {
		return m, err
	}
	m.PortCount = 1
	if l.skipByte('/') {
		start := l.pos
		if m.PortCount, err = l.readUint16(); err != nil {
			return m, err
		}
		if m.PortCount == 0 {
			return m, l.errorAt(start, ZeroPortCount, "0")
		}
	}
	if err = l.readWhitespace(); err != nil {
		return m, err
	}

	start := l.pos
	for {
		if _, err = l.readToken(); err != nil {
			return m, err
		}
		if !l.skipByte('/') {
			break
		}
	}
	m.Proto = string(l.value[start:l.pos])

	for {
		if err = l.readWhitespace(); err != nil {
			return m, err
		}
		format, err := l.readToken()
		if err != nil {
			return m, err
		}
		m.Formats = append(m.Formats, format)
		if ch, ok := l.peekByte(); !ok || !isWhitespace(ch) {
			break
		}
	}
	return m, l.lineEnd()
}

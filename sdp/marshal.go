package sdp

import (
	"bytes"
	"io"
	"strconv"
	"sync"
)

type buffer struct {
	data []byte
}

func (b *buffer) writeUint64(v uint64) *buffer {
	b.data = strconv.AppendUint(b.data, v, 10)
	return b
}

func (b *buffer) writeInt64(v int64) *buffer {
	b.data = strconv.AppendInt(b.data, v, 10)
	return b
}

func (b *buffer) writeString(v string) *buffer {
	b.data = append(b.data, v...)
	return b
}

func (b *buffer) writeChar(char byte) *buffer {
	b.data = append(b.data, char)
	return b
}

func (b *buffer) writeField(letter byte) *buffer {
	b.data = append(b.data, letter, '=')
	return b
}

func (b *buffer) writeNewline() *buffer {
	b.data = append(b.data, '\r', '\n')
	return b
}

func (b *buffer) writeSpace() *buffer {
	b.data = append(b.data, ' ')
	return b
}

var bufferPool = sync.Pool{
	New: func() interface{} { return &buffer{} },
}

// Encoder writes sessions in rfc8866 field order with CRLF terminators.
// Durations are written in seconds.
type Encoder struct {
	buffer *buffer
	w      io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) Encode(s *Session) error {
	e.buffer = bufferPool.Get().(*buffer)
	e.encodeSession(s)
	return e.Flush()
}

func (e *Encoder) Flush() error {
	if e.buffer == nil {
		return nil
	}
	defer func() {
		e.buffer.data = e.buffer.data[:0]
		bufferPool.Put(e.buffer)
		e.buffer = nil
	}()

	written := 0
	for written < len(e.buffer.data) {
		w, err := e.w.Write(e.buffer.data[written:])
		if err != nil {
			return err
		}
		written += w
	}
	return nil
}

// Marshal returns the wire form of s.
func (s *Session) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) encodeSession(s *Session) {
	e.buffer.writeField('v').writeUint64(uint64(s.Version)).writeNewline()
	e.encodeOrigin(&s.Origin)
	e.encodeText('s', s.SessionName)

	if s.SessionInformation != "" {
		e.encodeText('i', s.SessionInformation)
	}
	if s.URI != "" {
		e.encodeText('u', s.URI)
	}
	for _, email := range s.Emails {
		e.encodeText('e', email)
	}
	for _, phone := range s.PhoneNumbers {
		e.encodeText('p', phone)
	}
	if s.Connection != nil {
		e.encodeConnection(s.Connection)
	}
	e.encodeBandwidths(s.Bandwidths)
	for i := range s.TimeDescriptions {
		e.encodeTiming(&s.TimeDescriptions[i])
	}
	if len(s.TimeZones) > 0 {
		e.encodeTimeZones(s.TimeZones)
	}
	if s.EncryptionKey != nil {
		e.encodeText('k', s.EncryptionKey.Value)
	}
	e.encodeAttributes(s.Attributes)
	for i := range s.MediaDescriptions {
		e.encodeMediaDescription(&s.MediaDescriptions[i])
	}
}

func (e *Encoder) encodeText(letter byte, text string) {
	e.buffer.writeField(letter).writeString(text).writeNewline()
}

func (e *Encoder) encodeOrigin(o *Origin) {
	e.buffer.writeField('o').writeString(o.Username).writeSpace().
		writeString(o.SessionID).writeSpace().
		writeUint64(o.SessionVersion).writeSpace().
		writeString(string(o.NetType)).writeSpace().
		writeString(string(o.AddrType)).writeSpace().
		writeString(o.UnicastAddress).writeNewline()
}

func (e *Encoder) encodeConnection(c *Connection) {
	e.buffer.writeField('c').writeString(string(c.NetType)).writeSpace().
		writeString(string(c.AddrType)).writeSpace().
		writeString(c.Address)
	if c.TTL != nil {
		e.buffer.writeChar('/').writeUint64(uint64(*c.TTL))
	}
	if c.Count != nil {
		e.buffer.writeChar('/').writeUint64(uint64(*c.Count))
	}
	e.buffer.writeNewline()
}

func (e *Encoder) encodeBandwidths(bandwidths []Bandwidth) {
	for _, b := range bandwidths {
		e.buffer.writeField('b').writeString(string(b.Type)).writeChar(':').writeUint64(b.Value).writeNewline()
	}
}

func (e *Encoder) encodeTiming(t *TimeDescription) {
	e.buffer.writeField('t').writeUint64(t.Start).writeSpace().writeUint64(t.Stop).writeNewline()
	for _, r := range t.RepeatTimes {
		e.buffer.writeField('r').writeUint64(r.Interval).writeSpace().writeUint64(r.Active)
		for _, offset := range r.Offsets {
			e.buffer.writeSpace().writeUint64(offset)
		}
		e.buffer.writeNewline()
	}
}

func (e *Encoder) encodeTimeZones(zones []TimeZone) {
	e.buffer.writeField('z')
	for i, zone := range zones {
		if i > 0 {
			e.buffer.writeSpace()
		}
		e.buffer.writeUint64(zone.AdjustmentTime).writeSpace().writeInt64(zone.Offset)
	}
	e.buffer.writeNewline()
}

func (e *Encoder) encodeAttributes(attributes []Attribute) {
	for _, a := range attributes {
		e.buffer.writeField('a').writeString(a.Name)
		if a.HasValue {
			e.buffer.writeChar(':').writeString(a.Value)
		}
		e.buffer.writeNewline()
	}
}

func (e *Encoder) encodeMediaDescription(m *MediaDescription) {
	e.buffer.writeField('m').writeString(string(m.Media)).writeSpace().writeUint64(uint64(m.Port))
	if m.PortCount > 1 {
		e.buffer.writeChar('/').writeUint64(uint64(m.PortCount))
	}
	e.buffer.writeSpace().writeString(m.Proto)
	for _, format := range m.Formats {
		e.buffer.writeSpace().writeString(format)
	}
	e.buffer.writeNewline()

	if m.Title != "" {
		e.encodeText('i', m.Title)
	}
	for i := range m.Connections {
		e.encodeConnection(&m.Connections[i])
	}
	e.encodeBandwidths(m.Bandwidths)
	if m.EncryptionKey != nil {
		e.encodeText('k', m.EncryptionKey.Value)
	}
	e.encodeAttributes(m.Attributes)
}

// Package sdp implements the Session Description Protocol (SDP), rfc8866
package sdp

import (
	"net/netip"
	"strings"
)

// NetType is the network type of an address. Only "IN" is registered.
type NetType string

const (
	NetworkInternet NetType = "IN"
)

// AddrType is the address family of an address.
type AddrType string

const (
	TypeIPv4 AddrType = "IP4"
	TypeIPv6 AddrType = "IP6"
)

// MediaType is the <media> token of an m= line. Unregistered media types
// are preserved verbatim.
type MediaType string

const (
	MediaAudio       MediaType = "audio"
	MediaVideo       MediaType = "video"
	MediaText        MediaType = "text"
	MediaApplication MediaType = "application"
	MediaMessage     MediaType = "message"
)

// IsKnown reports whether m is one of the media types registered by rfc8866.
func (m MediaType) IsKnown() bool {
	switch m {
	case MediaAudio, MediaVideo, MediaText, MediaApplication, MediaMessage:
		return true
	}
	return false
}

// BandwidthType is the <bwtype> of a b= line.
type BandwidthType string

const (
	BandwidthConferenceTotal     BandwidthType = "CT"
	BandwidthApplicationSpecific BandwidthType = "AS"
	BandwidthTIAS                BandwidthType = "TIAS"
)

// Origin is the o= line.
type Origin struct {
	Username string
	// SessionID is kept textual, rfc8866 only requires a numeric string.
	SessionID      string
	SessionVersion uint64
	NetType        NetType
	AddrType       AddrType
	UnicastAddress string
}

// IP returns the unicast address as an IP, or false when it is an FQDN.
func (o Origin) IP() (netip.Addr, bool) {
	return literalAddr(o.AddrType, o.UnicastAddress)
}

// Connection is a c= line. TTL is only set for IP4 multicast addresses,
// Count only for multicast addresses.
type Connection struct {
	NetType  NetType
	AddrType AddrType
	Address  string
	TTL      *uint8
	Count    *uint32
}

// IP returns the base address as an IP, or false when it is an FQDN.
func (c Connection) IP() (netip.Addr, bool) {
	return literalAddr(c.AddrType, c.Address)
}

// IsMulticast reports whether the connection describes a multicast group.
func (c Connection) IsMulticast() bool {
	if c.TTL != nil || c.Count != nil {
		return true
	}
	ip, ok := c.IP()
	return ok && ip.IsMulticast()
}

// Bandwidth is a b= line. Value is in kilobits per second except for
// TIAS, which is bits per second.
type Bandwidth struct {
	Type  BandwidthType
	Value uint64
}

// TimeDescription is a t= line followed by its r= lines. Times are NTP
// seconds.
type TimeDescription struct {
	Start       uint64
	Stop        uint64
	RepeatTimes []RepeatTime
}

// IsPermanent reports whether the session has neither start nor stop time.
func (t TimeDescription) IsPermanent() bool {
	return t.Start == 0 && t.Stop == 0
}

// IsUnbounded reports whether the session has no stop time.
func (t TimeDescription) IsUnbounded() bool {
	return t.Stop == 0
}

// RepeatTime is an r= line with every duration expanded to seconds.
type RepeatTime struct {
	Interval uint64
	Active   uint64
	Offsets  []uint64
}

// TimeZone is one adjustment pair of a z= line.
type TimeZone struct {
	AdjustmentTime uint64
	Offset         int64
}

// EncryptionKey is the obsolete k= line, kept opaque.
type EncryptionKey struct {
	Value string
}

// Deprecated is always true, rfc8866 section 5.12 obsoletes k=.
func (k EncryptionKey) Deprecated() bool {
	return true
}

// Method returns the key method, e.g. "clear" for "clear:secret".
func (k EncryptionKey) Method() string {
	method, _, _ := strings.Cut(k.Value, ":")
	return method
}

// Attribute is an a= line: a property attribute (a=recvonly) when
// HasValue is false, a value attribute (a=rtpmap:0 PCMU/8000) otherwise.
type Attribute struct {
	Name     string
	Value    string
	HasValue bool
}

// NewPropertyAttribute returns a=<name>.
func NewPropertyAttribute(name string) Attribute {
	return Attribute{Name: name}
}

// NewAttribute returns a=<name>:<value>.
func NewAttribute(name, value string) Attribute {
	return Attribute{Name: name, Value: value, HasValue: true}
}

// IsProperty reports whether a carries no value.
func (a Attribute) IsProperty() bool {
	return !a.HasValue
}

func (a Attribute) String() string {
	if !a.HasValue {
		return a.Name
	}
	return a.Name + ":" + a.Value
}

// MediaDescription is an m= line and the lines scoped to it.
type MediaDescription struct {
	Media     MediaType
	Port      uint16
	PortCount uint16
	// Proto is the slash-joined transport, e.g. "UDP/TLS/RTP/SAVPF".
	Proto         string
	Formats       []string
	Title         string
	Connections   []Connection
	Bandwidths    []Bandwidth
	EncryptionKey *EncryptionKey
	Attributes    []Attribute
}

// ProtoParts returns Proto split on "/".
func (m MediaDescription) ProtoParts() []string {
	return strings.Split(m.Proto, "/")
}

// Attribute returns the value of the first attribute called name.
func (m MediaDescription) Attribute(name string) (string, bool) {
	return findAttribute(m.Attributes, name)
}

// Session is a parsed session description.
type Session struct {
	Version            uint8
	Origin             Origin
	SessionName        string
	SessionInformation string
	URI                string
	Emails             []string
	PhoneNumbers       []string
	Connection         *Connection
	Bandwidths         []Bandwidth
	TimeDescriptions   []TimeDescription
	TimeZones          []TimeZone
	EncryptionKey      *EncryptionKey
	Attributes         []Attribute
	MediaDescriptions  []MediaDescription
}

// AddAttribute appends a session level attribute. An empty value adds a
// property attribute.
func (s *Session) AddAttribute(name, value string) {
	if value == "" {
		s.Attributes = append(s.Attributes, NewPropertyAttribute(name))
		return
	}
	s.Attributes = append(s.Attributes, NewAttribute(name, value))
}

// Attribute returns the value of the first session level attribute called name.
func (s *Session) Attribute(name string) (string, bool) {
	return findAttribute(s.Attributes, name)
}

// Charset returns the character set declared by a session level
// a=charset attribute, or "" when none is declared (UTF-8). The s= and i=
// fields are in this charset, decoding them is up to the caller.
func (s *Session) Charset() string {
	charset, _ := s.Attribute("charset")
	return charset
}

func findAttribute(attrs []Attribute, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func literalAddr(addrType AddrType, address string) (netip.Addr, bool) {
	switch addrType {
	case TypeIPv4:
		if ip, ok := parseIPv4(address); ok {
			return ip, true
		}
	case TypeIPv6:
		if ip, ok := parseIPv6(address); ok {
			return ip, true
		}
	}
	return netip.Addr{}, false
}

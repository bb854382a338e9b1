package sessiondescription

import (
	"math/rand"
	"net/netip"
	"strconv"

	"github.com/nostressdev/sessiondescription/sdp"
)

// NewSession returns a session with only the required lines filled in:
// "-" as user and session name, a random session id, version 0 and a
// single unbounded t=0 0. address becomes the origin unicast address.
func NewSession(address netip.Addr) (*sdp.Session, error) {
	addrType, err := addrTypeOf(address)
	if err != nil {
		return nil, err
	}
	return &sdp.Session{
		Origin: sdp.Origin{
			Username:       "-",
			SessionID:      strconv.FormatInt(rand.Int63(), 10),
			SessionVersion: 0,
			NetType:        sdp.NetworkInternet,
			AddrType:       addrType,
			UnicastAddress: address.String(),
		},
		SessionName:      "-",
		TimeDescriptions: []sdp.TimeDescription{{Start: 0, Stop: 0}},
	}, nil
}

// AddMedia appends an m= section and returns it. The pointer is valid
// until the next call.
func AddMedia(s *sdp.Session, media sdp.MediaType, port uint16, proto string, formats ...string) (*sdp.MediaDescription, error) {
	if len(formats) == 0 {
		return nil, makeError(ErrInvalidModification, "media %s without formats", media)
	}
	s.MediaDescriptions = append(s.MediaDescriptions, sdp.MediaDescription{
		Media:     media,
		Port:      port,
		PortCount: 1,
		Proto:     proto,
		Formats:   formats,
	})
	return &s.MediaDescriptions[len(s.MediaDescriptions)-1], nil
}

// SetConnection sets the connection line of m, or of the session when m is
// nil, to a unicast address.
func SetConnection(s *sdp.Session, m *sdp.MediaDescription, address netip.Addr) error {
	addrType, err := addrTypeOf(address)
	if err != nil {
		return err
	}
	c := sdp.Connection{
		NetType:  sdp.NetworkInternet,
		AddrType: addrType,
		Address:  address.String(),
	}
	if m == nil {
		s.Connection = &c
		return nil
	}
	m.Connections = []sdp.Connection{c}
	return nil
}

func addrTypeOf(address netip.Addr) (sdp.AddrType, error) {
	switch {
	case !address.IsValid():
		return "", makeError(ErrType, "invalid address")
	case address.Zone() != "":
		return "", makeError(ErrType, "address %s has a zone", address)
	case address.Is4():
		return sdp.TypeIPv4, nil
	}
	return sdp.TypeIPv6, nil
}

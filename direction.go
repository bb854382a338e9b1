package sessiondescription

import (
	"github.com/nostressdev/sessiondescription/sdp"
)

// Direction is one of the media direction property attributes of rfc8866
// section 6.7.
type Direction string

const (
	DirectionSendRecv Direction = "sendrecv"
	DirectionSendOnly Direction = "sendonly"
	DirectionRecvOnly Direction = "recvonly"
	DirectionInactive Direction = "inactive"
)

// Valid reports whether d is one of the four direction attributes.
func (d Direction) Valid() bool {
	switch d {
	case DirectionSendRecv, DirectionSendOnly, DirectionRecvOnly, DirectionInactive:
		return true
	}
	return false
}

// MediaDirection returns the direction of m: its own direction attribute,
// else the session level one, else sendrecv.
func MediaDirection(s *sdp.Session, m *sdp.MediaDescription) Direction {
	if d, ok := directionOf(m.Attributes); ok {
		return d
	}
	if s != nil {
		if d, ok := directionOf(s.Attributes); ok {
			return d
		}
	}
	return DirectionSendRecv
}

// SetDirection replaces the direction attributes of m with d.
func SetDirection(m *sdp.MediaDescription, d Direction) error {
	if !d.Valid() {
		return makeError(ErrType, "unknown direction %q", string(d))
	}
	attrs := make([]sdp.Attribute, 0, len(m.Attributes)+1)
	for _, a := range m.Attributes {
		if a.IsProperty() && Direction(a.Name).Valid() {
			continue
		}
		attrs = append(attrs, a)
	}
	m.Attributes = append(attrs, sdp.NewPropertyAttribute(string(d)))
	return nil
}

func directionOf(attrs []sdp.Attribute) (Direction, bool) {
	for _, a := range attrs {
		if d := Direction(a.Name); a.IsProperty() && d.Valid() {
			return d, true
		}
	}
	return "", false
}

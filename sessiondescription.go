// Package sessiondescription carries session descriptions between peers
// and parses them with package sdp.
package sessiondescription

import (
	"bytes"

	"github.com/nostressdev/sessiondescription/sdp"
)

// SessionDescription is a session description together with its type, in
// the JSON shape used by signaling channels: {"type": "offer", "sdp": "..."}.
type SessionDescription struct {
	Type SDPType `json:"type"`
	SDP  string  `json:"sdp"`

	// parsed caches the result of Unmarshal. It is not updated when SDP is
	// changed afterwards.
	parsed *sdp.Session
}

// NewSessionDescription encodes session into a description of type t. A
// rollback takes no session.
func NewSessionDescription(t SDPType, session *sdp.Session) (*SessionDescription, error) {
	if !t.Valid() {
		return nil, makeError(ErrType, "%w %q", ErrUnknownSDPType, string(t))
	}
	d := &SessionDescription{Type: t}
	if t == SDPTypeRollback {
		if session != nil {
			return nil, makeError(ErrInvalidModification, "%w", ErrNoSession)
		}
		return d, nil
	}
	if session == nil {
		return nil, makeError(ErrInvalidModification, "%s description without a session", t)
	}
	if err := d.setSession(session); err != nil {
		return nil, err
	}
	return d, nil
}

// setSession encodes session and parses the text back, so a session that
// does not encode to a valid description is rejected.
func (d *SessionDescription) setSession(session *sdp.Session) error {
	buf := &bytes.Buffer{}
	if err := sdp.NewEncoder(buf).Encode(session); err != nil {
		return err
	}
	parsed, err := sdp.Unmarshal(buf.Bytes())
	if err != nil {
		return makeError(ErrSyntax, "%w", err)
	}
	d.SDP = buf.String()
	d.parsed = parsed
	return nil
}

// Unmarshal parses SDP using config. The result is cached, later calls
// return it regardless of config.
func (d *SessionDescription) Unmarshal(config Configuration) (*sdp.Session, error) {
	if d.parsed != nil {
		return d.parsed, nil
	}
	if d.Type == SDPTypeRollback {
		return nil, makeError(ErrInvalidState, "%w", ErrNoSession)
	}

	log := config.newLogger()
	session, err := config.decoderConfig().Unmarshal([]byte(d.SDP))
	if err != nil {
		log.Warnf("rejected %s description: %v", d.Type, err)
		return nil, makeError(ErrSyntax, "%w", err)
	}
	log.Debugf("accepted %s description with %d media description(s)", d.Type, len(session.MediaDescriptions))
	d.parsed = session
	return session, nil
}

// Session parses SDP in strict mode.
func (d *SessionDescription) Session() (*sdp.Session, error) {
	return d.Unmarshal(Configuration{})
}

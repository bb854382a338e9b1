package sessiondescription

import (
	"encoding/json"
)

// SDPType is the role a session description plays in an offer/answer
// exchange.
type SDPType string

const (
	SDPTypeOffer    SDPType = "offer"
	SDPTypePranswer SDPType = "pranswer"
	SDPTypeAnswer   SDPType = "answer"
	SDPTypeRollback SDPType = "rollback"
)

// Valid reports whether t is one of the known types.
func (t SDPType) Valid() bool {
	switch t {
	case SDPTypeOffer, SDPTypePranswer, SDPTypeAnswer, SDPTypeRollback:
		return true
	}
	return false
}

func (t SDPType) String() string {
	return string(t)
}

func (t SDPType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, makeError(ErrType, "%w %q", ErrUnknownSDPType, string(t))
	}
	return json.Marshal(string(t))
}

func (t *SDPType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !SDPType(s).Valid() {
		return makeError(ErrType, "%w %q", ErrUnknownSDPType, s)
	}
	*t = SDPType(s)
	return nil
}

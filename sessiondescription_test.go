package sessiondescription

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"testing"

	"github.com/pion/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nostressdev/sessiondescription/sdp"
)

const offerSDP = "v=0\r\n" +
	"o=- 4858251974351650128 2 IN IP4 127.0.0.1\r\n" +
	"s=-\r\n" +
	"t=0 0\r\n" +
	"a=sendonly\r\n" +
	"m=audio 9 UDP/TLS/RTP/SAVPF 111\r\n" +
	"c=IN IP4 0.0.0.0\r\n" +
	"a=rtpmap:111 opus/48000/2\r\n" +
	"m=video 9 UDP/TLS/RTP/SAVPF 96\r\n" +
	"c=IN IP4 0.0.0.0\r\n" +
	"a=inactive\r\n"

func TestSDPTypeJSON(t *testing.T) {
	testCases := []struct {
		sdpType SDPType
		json    string
	}{
		{SDPTypeOffer, `"offer"`},
		{SDPTypePranswer, `"pranswer"`},
		{SDPTypeAnswer, `"answer"`},
		{SDPTypeRollback, `"rollback"`},
	}

	for i, testCase := range testCases {
		b, err := json.Marshal(testCase.sdpType)
		require.NoError(t, err, "testCase: %d %v", i, testCase)
		assert.Equal(t, testCase.json, string(b), "testCase: %d %v", i, testCase)

		var sdpType SDPType
		require.NoError(t, json.Unmarshal([]byte(testCase.json), &sdpType))
		assert.Equal(t, testCase.sdpType, sdpType)
		assert.Equal(t, testCase.json, fmt.Sprintf("%q", sdpType))
	}

	var sdpType SDPType
	err := json.Unmarshal([]byte(`"bogus"`), &sdpType)
	assert.ErrorIs(t, err, ErrUnknownSDPType)
	assert.True(t, strings.HasPrefix(err.Error(), ErrType), err.Error())

	_, err = json.Marshal(SDPType("bogus"))
	assert.ErrorIs(t, err, ErrUnknownSDPType)
}

func TestSessionDescriptionJSON(t *testing.T) {
	desc := &SessionDescription{Type: SDPTypeOffer, SDP: offerSDP}
	b, err := json.Marshal(desc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"offer","sdp":`+mustJSON(t, offerSDP)+`}`, string(b))

	var decoded SessionDescription
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, SDPTypeOffer, decoded.Type)
	assert.Equal(t, offerSDP, decoded.SDP)

	err = json.Unmarshal([]byte(`{"type":"bogus","sdp":""}`), &decoded)
	assert.ErrorIs(t, err, ErrUnknownSDPType)
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestSessionDescriptionUnmarshal(t *testing.T) {
	desc := &SessionDescription{Type: SDPTypeOffer, SDP: offerSDP}
	session, err := desc.Session()
	require.NoError(t, err)
	require.Len(t, session.MediaDescriptions, 2)
	assert.Equal(t, "4858251974351650128", session.Origin.SessionID)

	again, err := desc.Unmarshal(Configuration{Lenient: true})
	require.NoError(t, err)
	assert.Same(t, session, again)
}

func TestSessionDescriptionSyntaxError(t *testing.T) {
	lf := strings.ReplaceAll(offerSDP, "\r\n", "\n")

	desc := &SessionDescription{Type: SDPTypeAnswer, SDP: lf}
	_, err := desc.Session()
	require.Error(t, err)
	assert.ErrorIs(t, err, sdp.ErrUnterminatedLine)
	assert.True(t, strings.HasPrefix(err.Error(), ErrSyntax+": sdp: line 1"), err.Error())

	var perr *sdp.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, byte('v'), perr.Letter)

	session, err := desc.Unmarshal(Configuration{Lenient: true, LoggerFactory: logging.NewDefaultLoggerFactory()})
	require.NoError(t, err)
	assert.Len(t, session.MediaDescriptions, 2)

	_, err = (&SessionDescription{Type: SDPTypeOffer}).Session()
	assert.ErrorIs(t, err, sdp.ErrUnexpectedEndOfInput)
}

func TestRollback(t *testing.T) {
	desc, err := NewSessionDescription(SDPTypeRollback, nil)
	require.NoError(t, err)
	assert.Empty(t, desc.SDP)

	_, err = desc.Session()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.True(t, strings.HasPrefix(err.Error(), ErrInvalidState), err.Error())

	session, err := sdp.Unmarshal([]byte(offerSDP))
	require.NoError(t, err)
	_, err = NewSessionDescription(SDPTypeRollback, session)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestNewSessionDescription(t *testing.T) {
	session, err := sdp.Unmarshal([]byte(offerSDP))
	require.NoError(t, err)

	desc, err := NewSessionDescription(SDPTypeAnswer, session)
	require.NoError(t, err)
	assert.Equal(t, SDPTypeAnswer, desc.Type)
	assert.Equal(t, offerSDP, desc.SDP)

	parsed, err := desc.Session()
	require.NoError(t, err)
	assert.Equal(t, session, parsed)
	assert.NotSame(t, session, parsed)

	_, err = NewSessionDescription(SDPTypeOffer, nil)
	assert.True(t, strings.HasPrefix(err.Error(), ErrInvalidModification), err.Error())

	_, err = NewSessionDescription("bogus", session)
	assert.ErrorIs(t, err, ErrUnknownSDPType)
}

func TestBuiltSessionRoundTrip(t *testing.T) {
	session, err := NewSession(netip.MustParseAddr("2001:db8::1"))
	require.NoError(t, err)

	audio, err := AddMedia(session, sdp.MediaAudio, 49170, "RTP/AVP", "0", "8")
	require.NoError(t, err)
	require.NoError(t, SetDirection(audio, DirectionRecvOnly))
	require.NoError(t, SetConnection(session, nil, netip.MustParseAddr("198.51.100.1")))

	desc, err := NewSessionDescription(SDPTypeOffer, session)
	require.NoError(t, err)

	parsed, err := (&SessionDescription{Type: desc.Type, SDP: desc.SDP}).Session()
	require.NoError(t, err)
	assert.Equal(t, session, parsed)
	assert.Equal(t, DirectionRecvOnly, MediaDirection(parsed, &parsed.MediaDescriptions[0]))
}

func TestNewSessionDescriptionRejectsInvalidSession(t *testing.T) {
	testCases := []struct {
		name    string
		session *sdp.Session
		err     error
	}{
		{"Bad Version", &sdp.Session{Version: 7}, sdp.ErrInvalidVersion},
		{"Empty Origin", &sdp.Session{}, sdp.ErrExpectedToken},
		{"Missing Time", func() *sdp.Session {
			session, err := NewSession(netip.MustParseAddr("192.0.2.1"))
			require.NoError(t, err)
			session.TimeDescriptions = nil
			return session
		}(), sdp.ErrMissingField},
		{"Media Without Formats", func() *sdp.Session {
			session, err := NewSession(netip.MustParseAddr("192.0.2.1"))
			require.NoError(t, err)
			session.MediaDescriptions = []sdp.MediaDescription{{Media: sdp.MediaAudio, Port: 9, Proto: "RTP/AVP"}}
			return session
		}(), sdp.ErrExpectedWhitespace},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			desc, err := NewSessionDescription(SDPTypeOffer, testCase.session)
			assert.Nil(t, desc)
			require.Error(t, err)
			assert.ErrorIs(t, err, testCase.err)
			assert.True(t, strings.HasPrefix(err.Error(), ErrSyntax), err.Error())
		})
	}
}

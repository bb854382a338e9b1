package sdp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorKind(t *testing.T, err error) ErrorKind {
	t.Helper()
	var perr *ParseError
	require.True(t, errors.As(err, &perr), "expected *ParseError, got %v", err)
	return perr.Kind
}

func TestReadUint(t *testing.T) {
	testCases := []struct {
		input string
		bits  int
		value uint64
		kind  ErrorKind
		pos   int
	}{
		{"0", 8, 0, 0, 1},
		{"255 ", 8, 255, 0, 3},
		{"256", 8, 0, Overflow, 0},
		{"65535", 16, 65535, 0, 5},
		{"65536", 16, 0, Overflow, 0},
		{"4294967295", 32, 4294967295, 0, 10},
		{"18446744073709551615", 64, 18446744073709551615, 0, 20},
		{"18446744073709551616", 64, 0, Overflow, 0},
		{"007/", 8, 7, 0, 3},
		{"x", 8, 0, ExpectedDigit, 0},
		{"", 8, 0, UnexpectedEndOfInput, 0},
	}

	for _, testCase := range testCases {
		l := newBaseLexer([]byte(testCase.input), false)
		n, err := l.readUint(testCase.bits)
		if testCase.kind != 0 {
			assert.Equal(t, testCase.kind, errorKind(t, err), "input %q", testCase.input)
			continue
		}
		require.NoError(t, err, "input %q", testCase.input)
		assert.Equal(t, testCase.value, n, "input %q", testCase.input)
		assert.Equal(t, testCase.pos, l.pos, "input %q", testCase.input)
	}
}

func TestReadDuration(t *testing.T) {
	testCases := []struct {
		input string
		value uint64
		kind  ErrorKind
	}{
		{"0", 0, 0},
		{"90", 90, 0},
		{"30s", 30, 0},
		{"10m", 600, 0},
		{"25h", 90000, 0},
		{"7d", 604800, 0},
		{"213503982334602d", 0, Overflow},
		{"d", 0, ExpectedDigit},
	}

	for _, testCase := range testCases {
		l := newBaseLexer([]byte(testCase.input), false)
		n, err := l.readDuration()
		if testCase.kind != 0 {
			assert.Equal(t, testCase.kind, errorKind(t, err), "input %q", testCase.input)
			continue
		}
		require.NoError(t, err, "input %q", testCase.input)
		assert.Equal(t, testCase.value, n, "input %q", testCase.input)
	}
}

func TestReadSignedDuration(t *testing.T) {
	for input, expected := range map[string]int64{
		"0":    0,
		"-1h":  -3600,
		"1h":   3600,
		"-25":  -25,
		"-10m": -600,
	} {
		l := newBaseLexer([]byte(input), false)
		n, err := l.readSignedDuration()
		require.NoError(t, err, input)
		assert.Equal(t, expected, n, input)
	}

	l := newBaseLexer([]byte("9223372036854775808"), false)
	_, err := l.readSignedDuration()
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestReadToken(t *testing.T) {
	l := newBaseLexer([]byte("RTP/AVP"), false)
	token, err := l.readToken()
	require.NoError(t, err)
	assert.Equal(t, "RTP", token)
	assert.Equal(t, 3, l.pos)

	l = newBaseLexer([]byte("extmap-allow-mixed:1"), false)
	token, err = l.readToken()
	require.NoError(t, err)
	assert.Equal(t, "extmap-allow-mixed", token)

	l = newBaseLexer([]byte(" x"), false)
	_, err = l.readToken()
	assert.Equal(t, ExpectedToken, errorKind(t, err))
}

func TestLineEnd(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		lenient bool
		kind    ErrorKind
	}{
		{"CRLF", "\r\n", false, 0},
		{"CRLF Lenient", "\r\n", true, 0},
		{"LF", "\n", false, UnterminatedLine},
		{"LF Lenient", "\n", true, 0},
		{"EOF", "", false, UnterminatedLine},
		{"EOF Lenient", "", true, 0},
		{"CR", "\rx", false, ExpectedLiteral},
		{"CR Lenient", "\rx", true, ExpectedLiteral},
		{"Space", " \r\n", true, ExpectedLiteral},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			l := newBaseLexer([]byte(testCase.input), testCase.lenient)
			err := l.lineEnd()
			if testCase.kind != 0 {
				assert.Equal(t, testCase.kind, errorKind(t, err))
				assert.Equal(t, 1, l.line)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2, l.line)
			assert.Equal(t, len(testCase.input), l.pos)
			assert.Equal(t, l.pos, l.lineStart)
		})
	}
}

func TestCheckAddress(t *testing.T) {
	testCases := []struct {
		addrType AddrType
		address  string
		valid    bool
		literal  bool
	}{
		{TypeIPv4, "198.51.100.1", true, true},
		{TypeIPv4, "0.0.0.0", true, true},
		{TypeIPv4, "255.255.255.255", true, true},
		{TypeIPv4, "256.1.1.1", false, false},
		{TypeIPv4, "1.2.3", false, false},
		{TypeIPv4, "1.2.3.4.5", false, false},
		{TypeIPv4, "1..2.3", false, false},
		{TypeIPv4, "alice.example.org", true, false},
		{TypeIPv4, "::1", false, false},
		{TypeIPv4, "a.b", false, false},
		{TypeIPv4, "host_name", false, false},
		{TypeIPv6, "2001:db8::1", true, true},
		{TypeIPv6, "::ffff:192.0.2.1", true, true},
		{TypeIPv6, "ff15::101", true, true},
		{TypeIPv6, "2001:db8:::1", false, false},
		{TypeIPv6, "fe80::1%eth0", false, false},
		{TypeIPv6, "198.51.100.1", false, false},
		{TypeIPv6, "host.example", true, false},
		{TypeIPv6, "", false, false},
	}

	for _, testCase := range testCases {
		ip, ok := checkAddress(testCase.addrType, testCase.address)
		assert.Equal(t, testCase.valid, ok, "%s %q", testCase.addrType, testCase.address)
		assert.Equal(t, testCase.literal, ip.IsValid(), "%s %q", testCase.addrType, testCase.address)
	}
}

func TestReadAddress(t *testing.T) {
	l := newBaseLexer([]byte("233.252.0.1/127/3"), false)
	address, ip, err := l.readAddress(TypeIPv4)
	require.NoError(t, err)
	assert.Equal(t, "233.252.0.1", address)
	assert.True(t, ip.IsMulticast())
	assert.Equal(t, byte('/'), l.value[l.pos])

	l = newBaseLexer([]byte("300.0.0.1"), false)
	_, _, err = l.readAddress(TypeIPv4)
	assert.ErrorIs(t, err, ErrBadAddress)
}

func TestCharacterClasses(t *testing.T) {
	for _, ch := range []byte("!#$%&'*+-.^_`{|}~azAZ09") {
		assert.True(t, isTokenChar(ch), "%q", ch)
	}
	for _, ch := range []byte(" \t\r\n/:=\"(),;<>?@[]\\") {
		assert.False(t, isTokenChar(ch), "%q", ch)
	}
	assert.True(t, isVisible('~'))
	assert.False(t, isVisible(' '))
	assert.False(t, isVisible(0x7f))
	assert.True(t, isVisible(0xc3))
}

package packet

import (
	"crypto/hmac"
	"crypto/md5"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
	"layeh.com/radius/rfc2869"
)

var testSecret = []byte("testing123")

func buildBounceRequest(t *testing.T) *Packet {
	t.Helper()

	pkt := New(CodeCoARequest, 7)

	ip, err := EncodeIPAddress("192.0.2.10")
	require.NoError(t, err)

	pkt.AddAttribute(NewAttribute(4, ip))
	pkt.AddAttribute(NewAttribute(87, []byte("Ethernet1")))
	pkt.AddAttribute(NewVendorAttribute(30065, 9, EncodeUint32(1)).ToVSA())

	return pkt
}

func TestNewPacket(t *testing.T) {
	tests := []struct {
		name       string
		code       Code
		identifier uint8
	}{
		{"CoA-Request", CodeCoARequest, 1},
		{"Disconnect-Request", CodeDisconnectRequest, 2},
		{"Access-Request", CodeAccessRequest, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkt := New(tt.code, tt.identifier)
			assert.Equal(t, tt.code, pkt.Code)
			assert.Equal(t, tt.identifier, pkt.Identifier)
			assert.Equal(t, uint16(PacketHeaderLength), pkt.Length)
			assert.Empty(t, pkt.Attributes)
		})
	}
}

func TestPacketAttributes(t *testing.T) {
	pkt := buildBounceRequest(t)

	assert.Len(t, pkt.Attributes, 3)
	assert.Equal(t, uint16(PacketHeaderLength+6+11+12), pkt.Length)

	attr, ok := pkt.GetAttribute(87)
	require.True(t, ok)
	assert.Equal(t, []byte("Ethernet1"), attr.Value)

	_, ok = pkt.GetAttribute(1)
	assert.False(t, ok)

	vsa, ok := pkt.GetAttribute(AttributeTypeVendorSpecific)
	require.True(t, ok)
	va, err := ParseVSA(vsa)
	require.NoError(t, err)
	assert.Equal(t, uint32(30065), va.VendorID)
	assert.Equal(t, []byte{0, 0, 0, 1}, va.Value)

	assert.Equal(t, 1, pkt.RemoveAttributes(87))
	assert.Len(t, pkt.Attributes, 2)
	assert.Equal(t, uint16(PacketHeaderLength+6+12), pkt.Length)
	assert.Equal(t, 0, pkt.RemoveAttributes(87))
}

func TestPacketIsValid(t *testing.T) {
	pkt := buildBounceRequest(t)
	assert.NoError(t, pkt.IsValid())

	bad := New(Code(99), 1)
	assert.ErrorContains(t, bad.IsValid(), "invalid packet code")

	mismatch := buildBounceRequest(t)
	mismatch.Length += 3
	assert.ErrorContains(t, mismatch.IsValid(), "length mismatch")
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	pkt := buildBounceRequest(t)
	require.NoError(t, pkt.SignRequest(testSecret, false))

	data, err := pkt.Encode()
	require.NoError(t, err)
	assert.Len(t, data, int(pkt.Length))
	assert.Equal(t, byte(CodeCoARequest), data[0])
	assert.Equal(t, byte(7), data[1])

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, pkt.Code, decoded.Code)
	assert.Equal(t, pkt.Identifier, decoded.Identifier)
	assert.Equal(t, pkt.Length, decoded.Length)
	assert.Equal(t, pkt.Authenticator, decoded.Authenticator)
	assert.Equal(t, pkt.Attributes, decoded.Attributes)
	assert.Equal(t, decoded.CalculateRequestAuthenticator(testSecret), decoded.Authenticator)
	assert.NotEqual(t, decoded.CalculateRequestAuthenticator([]byte("wrong")), decoded.Authenticator)
}

func TestDecodeIgnoresTrailingPadding(t *testing.T) {
	pkt := buildBounceRequest(t)
	require.NoError(t, pkt.SignRequest(testSecret, false))

	data, err := pkt.Encode()
	require.NoError(t, err)

	decoded, err := Decode(append(data, 0, 0, 0))
	require.NoError(t, err)
	assert.Len(t, decoded.Attributes, 3)
}

func TestDecodeErrors(t *testing.T) {
	valid := func() []byte {
		pkt := New(CodeCoAAck, 1)
		pkt.AddAttribute(NewAttribute(18, []byte("ok")))
		data, err := pkt.Encode()
		require.NoError(t, err)
		return data
	}

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		errMsg string
	}{
		{"too short", func(b []byte) []byte { return b[:10] }, "packet too short"},
		{"unknown code", func(b []byte) []byte { b[0] = 99; return b }, "invalid packet code"},
		{"header longer than data", func(b []byte) []byte { b[3] = 200; return b }, "length mismatch"},
		{"header below minimum", func(b []byte) []byte { b[2], b[3] = 0, 5; return b }, "invalid packet length"},
		{"attribute length below header", func(b []byte) []byte { b[21] = 1; return b }, "invalid attribute length"},
		{"attribute beyond packet", func(b []byte) []byte { b[21] = 50; return b }, "attribute extends beyond packet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.mutate(valid()))
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestSignRequestMatchesRFC5176(t *testing.T) {
	pkt := buildBounceRequest(t)
	require.NoError(t, pkt.SignRequest(testSecret, false))

	data, err := pkt.Encode()
	require.NoError(t, err)

	h := md5.New()
	h.Write(data[:4])
	h.Write(make([]byte, AuthenticatorLength))
	h.Write(data[PacketHeaderLength:])
	h.Write(testSecret)

	assert.Equal(t, h.Sum(nil), data[4:20])
}

func TestSignRequestWithMessageAuthenticator(t *testing.T) {
	pkt := buildBounceRequest(t)
	require.NoError(t, pkt.SignRequest(testSecret, true))
	assert.True(t, pkt.HasMessageAuthenticator())

	data, err := pkt.Encode()
	require.NoError(t, err)

	// HMAC over the packet with zeroed authenticator and Message-Authenticator value
	zeroed := make([]byte, len(data))
	copy(zeroed, data)
	for i := 4; i < 20; i++ {
		zeroed[i] = 0
	}
	maOffset := len(zeroed) - 16
	for i := maOffset; i < len(zeroed); i++ {
		zeroed[i] = 0
	}
	mac := hmac.New(md5.New, testSecret)
	mac.Write(zeroed)
	assert.Equal(t, mac.Sum(nil), data[maOffset:])

	assert.True(t, pkt.VerifyMessageAuthenticator(testSecret, [AuthenticatorLength]byte{}))
	assert.False(t, pkt.VerifyMessageAuthenticator([]byte("wrong"), [AuthenticatorLength]byte{}))
	assert.True(t, radius.IsAuthenticRequest(data, testSecret))

	// signing twice keeps a single Message-Authenticator
	require.NoError(t, pkt.SignRequest(testSecret, true))
	assert.Equal(t, 1, pkt.RemoveAttributes(AttributeTypeMessageAuthenticator))
}

func TestInteropWithLayehRequest(t *testing.T) {
	pkt := buildBounceRequest(t)
	require.NoError(t, pkt.SignRequest(testSecret, false))

	data, err := pkt.Encode()
	require.NoError(t, err)

	assert.True(t, radius.IsAuthenticRequest(data, testSecret))

	parsed, err := radius.Parse(data, testSecret)
	require.NoError(t, err)
	assert.Equal(t, radius.CodeCoARequest, parsed.Code)
	assert.Equal(t, uint8(7), parsed.Identifier)
	assert.Equal(t, "192.0.2.10", rfc2865.NASIPAddress_Get(parsed).String())
	assert.Equal(t, "Ethernet1", rfc2869.NASPortID_GetString(parsed))

	vsa := parsed.Get(radius.Type(AttributeTypeVendorSpecific))
	require.NotNil(t, vsa)
	vendorID, value, err := radius.VendorSpecific(vsa)
	require.NoError(t, err)
	assert.Equal(t, uint32(30065), vendorID)
	assert.Equal(t, []byte{9, 6, 0, 0, 0, 1}, []byte(value))
}

func TestInteropWithLayehResponse(t *testing.T) {
	pkt := buildBounceRequest(t)
	require.NoError(t, pkt.SignRequest(testSecret, false))

	data, err := pkt.Encode()
	require.NoError(t, err)

	request, err := radius.Parse(data, testSecret)
	require.NoError(t, err)

	response := request.Response(radius.CodeCoAACK)
	raw, err := response.Encode()
	require.NoError(t, err)

	decoded, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, CodeCoAAck, decoded.Code)
	assert.Equal(t, pkt.Identifier, decoded.Identifier)
	assert.True(t, decoded.VerifyResponseAuthenticator(testSecret, pkt.Authenticator))
	assert.False(t, decoded.VerifyResponseAuthenticator([]byte("wrong"), pkt.Authenticator))
}

func TestSignResponse(t *testing.T) {
	request := buildBounceRequest(t)
	require.NoError(t, request.SignRequest(testSecret, false))
	reqData, err := request.Encode()
	require.NoError(t, err)

	resp := New(CodeCoANak, request.Identifier)
	resp.AddAttribute(NewAttribute(AttributeTypeErrorCause, EncodeUint32(503)))
	require.NoError(t, resp.SignResponse(testSecret, request.Authenticator, true))

	respData, err := resp.Encode()
	require.NoError(t, err)

	assert.True(t, radius.IsAuthenticResponse(respData, reqData, testSecret))
	assert.True(t, resp.VerifyResponseAuthenticator(testSecret, request.Authenticator))
	assert.True(t, resp.VerifyMessageAuthenticator(testSecret, request.Authenticator))
	assert.False(t, resp.VerifyMessageAuthenticator(testSecret, [AuthenticatorLength]byte{}))
}

func TestSignRejectsWrongDirection(t *testing.T) {
	tests := []struct {
		name   string
		sign   func(p *Packet) error
		code   Code
		errMsg string
	}{
		{
			name:   "access request is not a CoA request",
			sign:   func(p *Packet) error { return p.SignRequest(testSecret, false) },
			code:   CodeAccessRequest,
			errMsg: "cannot sign Access-Request as a CoA or Disconnect request",
		},
		{
			name:   "ack is not a request",
			sign:   func(p *Packet) error { return p.SignRequest(testSecret, false) },
			code:   CodeCoAAck,
			errMsg: "cannot sign CoA-ACK as a CoA or Disconnect request",
		},
		{
			name:   "request is not a response",
			sign:   func(p *Packet) error { return p.SignResponse(testSecret, [AuthenticatorLength]byte{}, false) },
			code:   CodeCoARequest,
			errMsg: "cannot sign CoA-Request as a response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkt := New(tt.code, 1)
			assert.EqualError(t, tt.sign(pkt), tt.errMsg)
			assert.Equal(t, [AuthenticatorLength]byte{}, pkt.Authenticator)
		})
	}

	disconnect := New(CodeDisconnectRequest, 1)
	assert.NoError(t, disconnect.SignRequest(testSecret, false))
}

func TestPacketString(t *testing.T) {
	pkt := buildBounceRequest(t)
	assert.Equal(t, "Code=CoA-Request(43), ID=7, Length=49, Attributes=3", pkt.String())
}

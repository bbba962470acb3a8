package packet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttribute(t *testing.T) {
	attr := NewAttribute(87, []byte("Ethernet1"))
	assert.Equal(t, uint8(87), attr.Type)
	assert.Equal(t, uint8(11), attr.Length)
	assert.NoError(t, attr.Validate())
	assert.False(t, attr.IsVendorSpecific())
	assert.Equal(t, "Type=87, Length=11, Value=45746865726e657431", attr.String())
}

func TestAttributeValidate(t *testing.T) {
	tooLong := &Attribute{Type: 18, Length: 255, Value: bytes.Repeat([]byte{'a'}, 254)}
	assert.Error(t, tooLong.Validate())

	mismatch := &Attribute{Type: 18, Length: 10, Value: []byte("ab")}
	assert.Error(t, mismatch.Validate())

	assert.NoError(t, NewAttribute(18, bytes.Repeat([]byte{'a'}, MaxAttributeValueLength)).Validate())
}

func TestVendorAttributeRoundTrip(t *testing.T) {
	va := NewVendorAttribute(30065, 9, EncodeUint32(1))
	require.NoError(t, va.Validate())

	vsa := va.ToVSA()
	assert.True(t, vsa.IsVendorSpecific())
	assert.Equal(t, []byte{0, 0, 0x75, 0x71, 9, 6, 0, 0, 0, 1}, vsa.Value)
	assert.Equal(t, uint8(12), vsa.Length)

	parsed, err := ParseVSA(vsa)
	require.NoError(t, err)
	assert.Equal(t, va, parsed)
	assert.Equal(t, "VendorID=30065, Type=9, Value=00000001", parsed.String())
}

func TestVendorAttributeValidate(t *testing.T) {
	va := NewVendorAttribute(30065, 1, bytes.Repeat([]byte{'x'}, MaxVSAValueLength+1))
	assert.Error(t, va.Validate())
}

func TestParseVSAErrors(t *testing.T) {
	_, err := ParseVSA(NewAttribute(1, []byte("user")))
	assert.ErrorContains(t, err, "not a vendor-specific attribute")

	_, err = ParseVSA(NewAttribute(AttributeTypeVendorSpecific, []byte{0, 0, 0x75}))
	assert.ErrorContains(t, err, "invalid VSA length")

	_, err = ParseVSA(NewAttribute(AttributeTypeVendorSpecific, []byte{0, 0, 0x75, 0x71, 9, 9, 0, 0}))
	assert.ErrorContains(t, err, "invalid vendor length")
}

func TestEncodingUtils(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 0, 1}, EncodeUint32(1))

	v, err := DecodeUint32([]byte{0, 0, 1, 0xf7})
	require.NoError(t, err)
	assert.Equal(t, uint32(503), v)

	_, err = DecodeUint32([]byte{1, 2})
	assert.Error(t, err)

	ip, err := EncodeIPAddress("10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 0, 0, 1}, ip)

	s, err := DecodeIPAddress(ip)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", s)

	_, err = EncodeIPAddress("not-an-ip")
	assert.ErrorContains(t, err, "invalid IP address")

	_, err = EncodeIPAddress("2001:db8::1")
	assert.ErrorContains(t, err, "not an IPv4 address")

	_, err = DecodeIPAddress([]byte{1})
	assert.Error(t, err)
}

package crypto

import (
	"crypto/hmac"
	"crypto/md5"
)

// AuthenticatorLength is the length of RADIUS authenticators in bytes
const AuthenticatorLength = 16

// Authenticator represents a 16-byte RADIUS authenticator
type Authenticator [AuthenticatorLength]byte

// CalculateRequestAuthenticator calculates the Request Authenticator for CoA, Disconnect and Accounting packets
// Request Authenticator = MD5(Code + ID + Length + 16 zero octets + Request Attributes + Secret)
func CalculateRequestAuthenticator(code uint8, identifier uint8, length uint16, requestData []byte, sharedSecret []byte) Authenticator {
	hash := md5.New()

	hash.Write([]byte{code, identifier})
	hash.Write([]byte{byte(length >> 8), byte(length)})

	// 16 zero octets in place of the authenticator
	hash.Write(make([]byte, AuthenticatorLength))

	hash.Write(requestData)
	hash.Write(sharedSecret)

	var result Authenticator
	copy(result[:], hash.Sum(nil))
	return result
}

// CalculateResponseAuthenticator calculates the Response Authenticator as defined in RFC 2865
// Response Authenticator = MD5(Code + ID + Length + Request Authenticator + Response Attributes + Secret)
func CalculateResponseAuthenticator(code uint8, identifier uint8, length uint16, requestAuth Authenticator, responseData []byte, sharedSecret []byte) Authenticator {
	hash := md5.New()

	hash.Write([]byte{code, identifier})
	hash.Write([]byte{byte(length >> 8), byte(length)})
	hash.Write(requestAuth[:])
	hash.Write(responseData)
	hash.Write(sharedSecret)

	var result Authenticator
	copy(result[:], hash.Sum(nil))
	return result
}

// ValidateResponseAuthenticator validates a Response Authenticator
func ValidateResponseAuthenticator(code uint8, identifier uint8, length uint16, requestAuth Authenticator, responseData []byte, receivedAuth Authenticator, sharedSecret []byte) bool {
	expected := CalculateResponseAuthenticator(code, identifier, length, requestAuth, responseData, sharedSecret)
	return hmac.Equal(expected[:], receivedAuth[:])
}

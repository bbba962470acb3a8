package crypto

import (
	"crypto/hmac"
	"crypto/md5"
	"fmt"
)

// Message-Authenticator implementation as defined in RFC 3579 Section 3.2

const (
	// MessageAuthenticatorLength is the length of the Message-Authenticator value
	MessageAuthenticatorLength = 16

	messageAuthenticatorType = 80
	packetHeaderLength       = 20
)

// CalculateMessageAuthenticator calculates the Message-Authenticator for a RADIUS packet
// Message-Authenticator = HMAC-MD5(shared_secret, packet_with_zeroed_message_authenticator)
// The caller places the authenticator the calculation requires (zeros, or the
// Request Authenticator for responses) into the header before calling.
func CalculateMessageAuthenticator(packetData []byte, sharedSecret []byte) ([MessageAuthenticatorLength]byte, error) {
	var result [MessageAuthenticatorLength]byte

	if len(packetData) < packetHeaderLength {
		return result, fmt.Errorf("packet too short for Message-Authenticator calculation")
	}

	calcData := make([]byte, len(packetData))
	copy(calcData, packetData)

	if offset := findMessageAuthenticatorOffset(calcData); offset != -1 {
		clear(calcData[offset : offset+MessageAuthenticatorLength])
	}

	mac := hmac.New(md5.New, sharedSecret)
	mac.Write(calcData)

	copy(result[:], mac.Sum(nil))
	return result, nil
}

// ValidateMessageAuthenticator validates the Message-Authenticator in a RADIUS packet
func ValidateMessageAuthenticator(packetData []byte, sharedSecret []byte, receivedAuth [MessageAuthenticatorLength]byte) (bool, error) {
	expected, err := CalculateMessageAuthenticator(packetData, sharedSecret)
	if err != nil {
		return false, err
	}

	return hmac.Equal(expected[:], receivedAuth[:]), nil
}

// findMessageAuthenticatorOffset finds the offset of the Message-Authenticator value field
func findMessageAuthenticatorOffset(packetData []byte) int {
	start := findMessageAuthenticatorStart(packetData)
	if start == -1 {
		return -1
	}
	return start + 2
}

// findMessageAuthenticatorStart finds the start of a well-formed Message-Authenticator attribute
func findMessageAuthenticatorStart(packetData []byte) int {
	if len(packetData) < packetHeaderLength {
		return -1
	}

	offset := packetHeaderLength
	for offset+2 <= len(packetData) {
		attrType := packetData[offset]
		attrLength := int(packetData[offset+1])

		if attrLength < 2 || offset+attrLength > len(packetData) {
			break
		}

		if attrType == messageAuthenticatorType && attrLength == MessageAuthenticatorLength+2 {
			return offset
		}

		offset += attrLength
	}

	return -1
}

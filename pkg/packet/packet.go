package packet

import (
	"fmt"

	"github.com/vitalvas/portbounce/pkg/crypto"
)

// Packet represents a RADIUS packet as defined in RFC 2865
type Packet struct {
	Code          Code
	Identifier    uint8
	Length        uint16
	Authenticator [AuthenticatorLength]byte
	Attributes    []*Attribute
}

// New creates a new RADIUS packet with the specified code and identifier
func New(code Code, identifier uint8) *Packet {
	return &Packet{
		Code:       code,
		Identifier: identifier,
		Length:     PacketHeaderLength,
		Attributes: make([]*Attribute, 0),
	}
}

// AddAttribute adds an attribute to the packet
func (p *Packet) AddAttribute(attr *Attribute) {
	p.Attributes = append(p.Attributes, attr)
	p.Length += uint16(attr.Length)
}

// GetAttribute returns the first attribute with the specified type
func (p *Packet) GetAttribute(attrType uint8) (*Attribute, bool) {
	for _, attr := range p.Attributes {
		if attr.Type == attrType {
			return attr, true
		}
	}
	return nil, false
}

// RemoveAttributes removes all attributes with the specified type
func (p *Packet) RemoveAttributes(attrType uint8) int {
	removed := 0
	for i := len(p.Attributes) - 1; i >= 0; i-- {
		if p.Attributes[i].Type == attrType {
			p.Length -= uint16(p.Attributes[i].Length)
			p.Attributes = append(p.Attributes[:i], p.Attributes[i+1:]...)
			removed++
		}
	}
	return removed
}

// SetAuthenticator sets the packet authenticator
func (p *Packet) SetAuthenticator(auth [AuthenticatorLength]byte) {
	p.Authenticator = auth
}

// attributeBytes returns the wire form of all attributes
func (p *Packet) attributeBytes() []byte {
	data := make([]byte, 0, int(p.Length)-PacketHeaderLength)
	for _, attr := range p.Attributes {
		data = append(data, attr.Type, attr.Length)
		data = append(data, attr.Value...)
	}
	return data
}

// CalculateRequestAuthenticator calculates the Request Authenticator for CoA-Request packets (RFC 5176 Section 2.3)
func (p *Packet) CalculateRequestAuthenticator(secret []byte) [AuthenticatorLength]byte {
	return crypto.CalculateRequestAuthenticator(uint8(p.Code), p.Identifier, p.Length, p.attributeBytes(), secret)
}

// CalculateResponseAuthenticator calculates the Response Authenticator for the reply to a request
func (p *Packet) CalculateResponseAuthenticator(secret []byte, requestAuthenticator [AuthenticatorLength]byte) [AuthenticatorLength]byte {
	return crypto.CalculateResponseAuthenticator(uint8(p.Code), p.Identifier, p.Length, requestAuthenticator, p.attributeBytes(), secret)
}

// VerifyResponseAuthenticator checks the Response Authenticator of a received reply
func (p *Packet) VerifyResponseAuthenticator(secret []byte, requestAuthenticator [AuthenticatorLength]byte) bool {
	return crypto.ValidateResponseAuthenticator(uint8(p.Code), p.Identifier, p.Length, requestAuthenticator, p.attributeBytes(), p.Authenticator, secret)
}

// HasMessageAuthenticator reports whether the packet carries a Message-Authenticator
func (p *Packet) HasMessageAuthenticator() bool {
	_, ok := p.GetAttribute(AttributeTypeMessageAuthenticator)
	return ok
}

// setMessageAuthenticator (re)places the Message-Authenticator, computed with
// headerAuth in the authenticator field as RFC 3579 and RFC 5176 require
func (p *Packet) setMessageAuthenticator(secret []byte, headerAuth [AuthenticatorLength]byte) error {
	p.RemoveAttributes(AttributeTypeMessageAuthenticator)
	attr := NewAttribute(AttributeTypeMessageAuthenticator, make([]byte, crypto.MessageAuthenticatorLength))
	p.AddAttribute(attr)

	data := p.marshal(headerAuth)
	mac, err := crypto.CalculateMessageAuthenticator(data, secret)
	if err != nil {
		return fmt.Errorf("failed to calculate Message-Authenticator: %w", err)
	}

	copy(attr.Value, mac[:])
	return nil
}

// VerifyMessageAuthenticator validates the Message-Authenticator against headerAuth,
// which is zero for CoA requests and the Request Authenticator for replies
func (p *Packet) VerifyMessageAuthenticator(secret []byte, headerAuth [AuthenticatorLength]byte) bool {
	attr, ok := p.GetAttribute(AttributeTypeMessageAuthenticator)
	if !ok || len(attr.Value) != crypto.MessageAuthenticatorLength {
		return false
	}

	var received [crypto.MessageAuthenticatorLength]byte
	copy(received[:], attr.Value)

	valid, err := crypto.ValidateMessageAuthenticator(p.marshal(headerAuth), secret, received)
	return err == nil && valid
}

// SignRequest computes the Request Authenticator of a CoA or Disconnect request.
// With withMessageAuth set a Message-Authenticator is computed first over the
// packet with a zero authenticator, then covered by the Request Authenticator.
func (p *Packet) SignRequest(secret []byte, withMessageAuth bool) error {
	if !p.Code.IsRequest() || !p.Code.IsCoA() {
		return fmt.Errorf("cannot sign %s as a CoA or Disconnect request", p.Code)
	}

	if withMessageAuth {
		if err := p.setMessageAuthenticator(secret, [AuthenticatorLength]byte{}); err != nil {
			return err
		}
	}

	p.SetAuthenticator(p.CalculateRequestAuthenticator(secret))
	return nil
}

// SignResponse computes the Response Authenticator of a reply to the request
// carrying requestAuthenticator, adding a Message-Authenticator when asked
func (p *Packet) SignResponse(secret []byte, requestAuthenticator [AuthenticatorLength]byte, withMessageAuth bool) error {
	if !p.Code.IsResponse() {
		return fmt.Errorf("cannot sign %s as a response", p.Code)
	}

	if withMessageAuth {
		if err := p.setMessageAuthenticator(secret, requestAuthenticator); err != nil {
			return err
		}
	}

	p.SetAuthenticator(p.CalculateResponseAuthenticator(secret, requestAuthenticator))
	return nil
}

// IsValid performs basic validation of the packet
func (p *Packet) IsValid() error {
	if !p.Code.IsValid() {
		return fmt.Errorf("invalid packet code: %d", p.Code)
	}

	if p.Length < MinPacketLength {
		return fmt.Errorf("packet too short: %d bytes", p.Length)
	}

	if p.Length > MaxPacketLength {
		return fmt.Errorf("packet too long: %d bytes", p.Length)
	}

	expectedLength := PacketHeaderLength
	for _, attr := range p.Attributes {
		if err := attr.Validate(); err != nil {
			return err
		}
		expectedLength += int(attr.Length)
	}

	if int(p.Length) != expectedLength {
		return fmt.Errorf("packet length mismatch: header says %d, calculated %d", p.Length, expectedLength)
	}

	return nil
}

// String returns a string representation of the packet
func (p *Packet) String() string {
	return fmt.Sprintf("Code=%s(%d), ID=%d, Length=%d, Attributes=%d",
		p.Code.String(), p.Code, p.Identifier, p.Length, len(p.Attributes))
}

package packet

import (
	"fmt"
)

// Encode converts a Packet into its binary representation per RFC 2865 Section 3
func (p *Packet) Encode() ([]byte, error) {
	if err := p.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid packet: %w", err)
	}

	return p.marshal(p.Authenticator), nil
}

// marshal writes the packet with auth in the authenticator field
func (p *Packet) marshal(auth [AuthenticatorLength]byte) []byte {
	data := make([]byte, PacketHeaderLength, p.Length)

	data[0] = byte(p.Code)
	data[1] = p.Identifier
	data[2] = byte(p.Length >> 8)
	data[3] = byte(p.Length)
	copy(data[4:20], auth[:])

	return append(data, p.attributeBytes()...)
}

// Decode parses binary data into a Packet per RFC 2865 Section 3
func Decode(data []byte) (*Packet, error) {
	if len(data) < MinPacketLength {
		return nil, fmt.Errorf("packet too short: %d bytes", len(data))
	}

	if len(data) > MaxPacketLength {
		return nil, fmt.Errorf("packet too long: %d bytes", len(data))
	}

	code := Code(data[0])
	if !code.IsValid() {
		return nil, fmt.Errorf("invalid packet code: %d", code)
	}

	identifier := data[1]
	length := uint16(data[2])<<8 | uint16(data[3])

	if length < MinPacketLength {
		return nil, fmt.Errorf("invalid packet length in header: %d", length)
	}

	// RFC 2865 Section 3: octets beyond the Length field are padding and ignored
	if int(length) > len(data) {
		return nil, fmt.Errorf("packet length mismatch: header says %d, got %d", length, len(data))
	}

	packet := &Packet{
		Code:       code,
		Identifier: identifier,
		Length:     length,
		Attributes: make([]*Attribute, 0),
	}
	copy(packet.Authenticator[:], data[4:20])

	offset := PacketHeaderLength
	for offset < int(length) {
		if offset+AttributeHeaderLength > int(length) {
			return nil, fmt.Errorf("incomplete attribute header at offset %d", offset)
		}

		attrType := data[offset]
		attrLength := data[offset+1]

		if attrLength < AttributeHeaderLength {
			return nil, fmt.Errorf("invalid attribute length: %d", attrLength)
		}

		if offset+int(attrLength) > int(length) {
			return nil, fmt.Errorf("attribute extends beyond packet: offset %d, length %d, packet length %d",
				offset, attrLength, length)
		}

		attrValue := make([]byte, int(attrLength)-AttributeHeaderLength)
		copy(attrValue, data[offset+2:offset+int(attrLength)])

		packet.Attributes = append(packet.Attributes, &Attribute{
			Type:   attrType,
			Length: attrLength,
			Value:  attrValue,
		})
		offset += int(attrLength)
	}

	return packet, nil
}

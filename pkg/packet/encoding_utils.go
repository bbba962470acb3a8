package packet

import (
	"encoding/binary"
	"fmt"
	"net"
)

// EncodeUint32 encodes a uint32 value as a 4-byte big-endian slice
func EncodeUint32(value uint32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, value)
	return buf
}

// DecodeUint32 decodes a 4-byte big-endian slice to uint32
func DecodeUint32(data []byte) (uint32, error) {
	if len(data) != 4 {
		return 0, fmt.Errorf("invalid integer length: %d", len(data))
	}
	return binary.BigEndian.Uint32(data), nil
}

// EncodeIPAddress encodes an IPv4 address as a 4-byte slice
func EncodeIPAddress(ipStr string) ([]byte, error) {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return nil, fmt.Errorf("invalid IP address: %q", ipStr)
	}
	ipv4 := ip.To4()
	if ipv4 == nil {
		return nil, fmt.Errorf("not an IPv4 address: %q", ipStr)
	}
	return []byte(ipv4), nil
}

// DecodeIPAddress decodes a 4-byte slice to an IPv4 address string
func DecodeIPAddress(data []byte) (string, error) {
	if len(data) != 4 {
		return "", fmt.Errorf("invalid IP address length: %d", len(data))
	}
	return net.IP(data).String(), nil
}

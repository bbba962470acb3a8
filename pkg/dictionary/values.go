package dictionary

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/vitalvas/portbounce/pkg/packet"
)

func encodeValue(def *AttributeDefinition, value string) ([]byte, error) {
	switch def.DataType {
	case DataTypeString:
		return []byte(value), nil

	case DataTypeOctets:
		data, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid hex string %q", value)
		}
		return data, nil

	case DataTypeInteger:
		if v, ok := def.Values[value]; ok {
			return packet.EncodeUint32(v), nil
		}
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", value)
		}
		return packet.EncodeUint32(uint32(v)), nil

	case DataTypeIPAddr:
		return packet.EncodeIPAddress(value)

	default:
		return nil, fmt.Errorf("unsupported data type %s", def.DataType)
	}
}

func decodeValue(def *AttributeDefinition, data []byte) (string, error) {
	switch def.DataType {
	case DataTypeString:
		return string(data), nil

	case DataTypeOctets:
		return "0x" + hex.EncodeToString(data), nil

	case DataTypeInteger:
		v, err := packet.DecodeUint32(data)
		if err != nil {
			return "", err
		}
		for name, named := range def.Values {
			if named == v {
				return name, nil
			}
		}
		return strconv.FormatUint(uint64(v), 10), nil

	case DataTypeIPAddr:
		return packet.DecodeIPAddress(data)

	default:
		return "", fmt.Errorf("unsupported data type %s", def.DataType)
	}
}

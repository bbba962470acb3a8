// Package dictionary is the fixed set of RADIUS attributes a CoA request may carry.
package dictionary

import (
	"errors"
	"fmt"

	"github.com/vitalvas/portbounce/pkg/packet"
)

var (
	// ErrUnknownAttribute is returned for names outside the dictionary
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrInvalidValue is returned for values that do not fit the attribute data type
	ErrInvalidValue = errors.New("invalid attribute value")
)

// Attr identifies a supported attribute
type Attr uint8

// Supported attributes, in the order they are written to a packet
const (
	UserName Attr = iota + 1
	NASIPAddress
	NASPort
	FilterID
	ReplyMessage
	State
	SessionTimeout
	CalledStationID
	CallingStationID
	NASIdentifier
	AcctSessionID
	TunnelPrivateGroupID
	NASPortID
	ErrorCause
	AristaPortFlap
)

var definitions = map[Attr]*AttributeDefinition{
	UserName:             {ID: 1, Name: "User-Name", DataType: DataTypeString},
	NASIPAddress:         {ID: 4, Name: "NAS-IP-Address", DataType: DataTypeIPAddr},
	NASPort:              {ID: 5, Name: "NAS-Port", DataType: DataTypeInteger},
	FilterID:             {ID: 11, Name: "Filter-Id", DataType: DataTypeString},
	ReplyMessage:         {ID: 18, Name: "Reply-Message", DataType: DataTypeString},
	State:                {ID: 24, Name: "State", DataType: DataTypeOctets},
	SessionTimeout:       {ID: 27, Name: "Session-Timeout", DataType: DataTypeInteger},
	CalledStationID:      {ID: 30, Name: "Called-Station-Id", DataType: DataTypeString},
	CallingStationID:     {ID: 31, Name: "Calling-Station-Id", DataType: DataTypeString},
	NASIdentifier:        {ID: 32, Name: "NAS-Identifier", DataType: DataTypeString},
	AcctSessionID:        {ID: 44, Name: "Acct-Session-Id", DataType: DataTypeString},
	TunnelPrivateGroupID: {ID: 81, Name: "Tunnel-Private-Group-Id", DataType: DataTypeString},
	NASPortID:            {ID: 87, Name: "NAS-Port-Id", DataType: DataTypeString},
	ErrorCause:           {ID: packet.AttributeTypeErrorCause, Name: "Error-Cause", DataType: DataTypeInteger, Values: errorCauseValues},
	AristaPortFlap:       {ID: 9, Name: "Arista-PortFlap", DataType: DataTypeInteger, VendorID: VendorArista},
}

var byName = func() map[string]Attr {
	names := make(map[string]Attr, len(definitions))
	for attr, def := range definitions {
		names[def.Name] = attr
	}
	return names
}()

// All returns every supported attribute in packet order
func All() []Attr {
	attrs := make([]Attr, 0, len(definitions))
	for a := UserName; a <= AristaPortFlap; a++ {
		attrs = append(attrs, a)
	}
	return attrs
}

// ByName resolves an attribute by its dictionary name
func ByName(name string) (Attr, bool) {
	attr, ok := byName[name]
	return attr, ok
}

// Parse resolves an attribute by name, returning ErrUnknownAttribute when absent
func Parse(name string) (Attr, error) {
	attr, ok := ByName(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return attr, nil
}

// Lookup finds the dictionary entry for an attribute read off the wire
func Lookup(attr *packet.Attribute) (Attr, bool) {
	if attr.IsVendorSpecific() {
		va, err := packet.ParseVSA(attr)
		if err != nil {
			return 0, false
		}
		for a, def := range definitions {
			if def.VendorID == va.VendorID && def.ID == va.VendorType {
				return a, true
			}
		}
		return 0, false
	}

	for a, def := range definitions {
		if def.VendorID == 0 && def.ID == attr.Type {
			return a, true
		}
	}
	return 0, false
}

// Definition returns the attribute definition, nil for values outside the enumeration
func (a Attr) Definition() *AttributeDefinition {
	return definitions[a]
}

// Name returns the dictionary name of the attribute
func (a Attr) Name() string {
	if def := a.Definition(); def != nil {
		return def.Name
	}
	return fmt.Sprintf("Attr-%d", uint8(a))
}

func (a Attr) String() string {
	return a.Name()
}

// IsVendorSpecific reports whether the attribute travels inside a Vendor-Specific attribute
func (a Attr) IsVendorSpecific() bool {
	def := a.Definition()
	return def != nil && def.VendorID != 0
}

// Encode converts a textual value into the wire attribute
func (a Attr) Encode(value string) (*packet.Attribute, error) {
	def := a.Definition()
	if def == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, a.Name())
	}

	if value == "" {
		return nil, fmt.Errorf("%w: %s: empty value", ErrInvalidValue, def.Name)
	}

	data, err := encodeValue(def, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidValue, def.Name, err)
	}

	if def.VendorID != 0 {
		va := packet.NewVendorAttribute(def.VendorID, def.ID, data)
		if err := va.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		return va.ToVSA(), nil
	}

	if len(data) > packet.MaxAttributeValueLength {
		return nil, fmt.Errorf("%w: %s: value too long: %d bytes (max %d)",
			ErrInvalidValue, def.Name, len(data), packet.MaxAttributeValueLength)
	}
	return packet.NewAttribute(def.ID, data), nil
}

// Decode converts a wire attribute back into its textual value
func (a Attr) Decode(attr *packet.Attribute) (string, error) {
	def := a.Definition()
	if def == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownAttribute, a.Name())
	}

	data := attr.Value
	if def.VendorID != 0 {
		va, err := packet.ParseVSA(attr)
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", def.Name, err)
		}
		if va.VendorID != def.VendorID || va.VendorType != def.ID {
			return "", fmt.Errorf("attribute is not %s", def.Name)
		}
		data = va.Value
	} else if attr.Type != def.ID {
		return "", fmt.Errorf("attribute type %d is not %s", attr.Type, def.Name)
	}

	value, err := decodeValue(def, data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", def.Name, err)
	}
	return value, nil
}

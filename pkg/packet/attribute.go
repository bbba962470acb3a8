package packet

import (
	"encoding/binary"
	"fmt"
)

// Attribute represents a RADIUS attribute
type Attribute struct {
	Type   uint8
	Length uint8
	Value  []byte
}

// VendorAttribute represents a vendor-specific attribute (VSA)
type VendorAttribute struct {
	VendorID   uint32
	VendorType uint8
	Value      []byte
}

// NewAttribute creates a new RADIUS attribute
func NewAttribute(attrType uint8, value []byte) *Attribute {
	return &Attribute{
		Type:   attrType,
		Length: uint8(len(value) + AttributeHeaderLength),
		Value:  value,
	}
}

// NewVendorAttribute creates a new vendor-specific attribute
func NewVendorAttribute(vendorID uint32, vendorType uint8, value []byte) *VendorAttribute {
	return &VendorAttribute{
		VendorID:   vendorID,
		VendorType: vendorType,
		Value:      value,
	}
}

// Validate checks that the value fits into a single attribute
func (a *Attribute) Validate() error {
	if len(a.Value) > MaxAttributeValueLength {
		return fmt.Errorf("attribute %d value too long: %d bytes (max %d)", a.Type, len(a.Value), MaxAttributeValueLength)
	}
	if int(a.Length) != len(a.Value)+AttributeHeaderLength {
		return fmt.Errorf("attribute %d length mismatch: header says %d, value is %d bytes", a.Type, a.Length, len(a.Value))
	}
	return nil
}

// Validate checks that the vendor data fits into a single VSA
func (va *VendorAttribute) Validate() error {
	if len(va.Value) > MaxVSAValueLength {
		return fmt.Errorf("vendor %d attribute %d value too long: %d bytes (max %d)", va.VendorID, va.VendorType, len(va.Value), MaxVSAValueLength)
	}
	return nil
}

// IsVendorSpecific reports whether the attribute is a Vendor-Specific (Type 26) container
func (a *Attribute) IsVendorSpecific() bool {
	return a.Type == AttributeTypeVendorSpecific
}

// String returns a string representation of the attribute
func (a *Attribute) String() string {
	return fmt.Sprintf("Type=%d, Length=%d, Value=%x", a.Type, a.Length, a.Value)
}

// String returns a string representation of the vendor attribute
func (va *VendorAttribute) String() string {
	return fmt.Sprintf("VendorID=%d, Type=%d, Value=%x", va.VendorID, va.VendorType, va.Value)
}

// ToVSA converts a VendorAttribute to a standard Attribute (Type 26 - Vendor-Specific)
func (va *VendorAttribute) ToVSA() *Attribute {
	// VSA format: Type(1) + Length(1) + Vendor-ID(4) + Vendor-Type(1) + Vendor-Length(1) + Vendor-Data
	vsaValue := make([]byte, 6+len(va.Value))

	binary.BigEndian.PutUint32(vsaValue[0:4], va.VendorID)
	vsaValue[4] = va.VendorType
	vsaValue[5] = uint8(len(va.Value) + 2) // +2 for Vendor-Type and Vendor-Length
	copy(vsaValue[6:], va.Value)

	return NewAttribute(AttributeTypeVendorSpecific, vsaValue)
}

// ParseVSA parses a Vendor-Specific Attribute (Type 26) into VendorAttribute
func ParseVSA(attr *Attribute) (*VendorAttribute, error) {
	if attr.Type != AttributeTypeVendorSpecific {
		return nil, fmt.Errorf("not a vendor-specific attribute (type %d)", attr.Type)
	}

	if len(attr.Value) < 6 {
		return nil, fmt.Errorf("invalid VSA length: %d", len(attr.Value))
	}

	vendorID := binary.BigEndian.Uint32(attr.Value[0:4])
	vendorType := attr.Value[4]
	vendorLength := attr.Value[5]

	if int(vendorLength) != len(attr.Value)-4 {
		return nil, fmt.Errorf("invalid vendor length: %d, expected %d", vendorLength, len(attr.Value)-4)
	}

	vendorData := make([]byte, len(attr.Value)-6)
	copy(vendorData, attr.Value[6:])

	return &VendorAttribute{
		VendorID:   vendorID,
		VendorType: vendorType,
		Value:      vendorData,
	}, nil
}

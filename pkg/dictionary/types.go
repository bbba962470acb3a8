package dictionary

// DataType represents the data type of an attribute
type DataType string

const (
	DataTypeString  DataType = "string"
	DataTypeOctets  DataType = "octets"
	DataTypeInteger DataType = "integer"
	DataTypeIPAddr  DataType = "ipaddr"
)

// AttributeDefinition defines a RADIUS attribute
type AttributeDefinition struct {
	ID       uint8
	Name     string
	DataType DataType
	VendorID uint32
	Values   map[string]uint32
}

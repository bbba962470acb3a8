package dictionary

import "fmt"

// Error-Cause values as defined in RFC 5176 Section 3.5
var errorCauseValues = map[string]uint32{
	"Residual-Session-Context-Removed":       201,
	"Invalid-EAP-Packet":                     202,
	"Unsupported-Attribute":                  401,
	"Missing-Attribute":                      402,
	"NAS-Identification-Mismatch":            403,
	"Invalid-Request":                        404,
	"Unsupported-Service":                    405,
	"Unsupported-Extension":                  406,
	"Invalid-Attribute-Value":                407,
	"Administratively-Prohibited":            501,
	"Request-Not-Routable":                   502,
	"Session-Context-Not-Found":              503,
	"Session-Context-Not-Removable":          504,
	"Other-Proxy-Processing-Error":           505,
	"Resources-Unavailable":                  506,
	"Request-Initiated":                      507,
	"Multiple-Session-Selection-Unsupported": 508,
}

var errorCauseNames = invert(errorCauseValues)

// ErrorCauseString returns the RFC 5176 name of an Error-Cause value
func ErrorCauseString(value uint32) string {
	if name, ok := errorCauseNames[value]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", value)
}

func invert(values map[string]uint32) map[uint32]string {
	names := make(map[uint32]string, len(values))
	for name, value := range values {
		names[value] = name
	}
	return names
}

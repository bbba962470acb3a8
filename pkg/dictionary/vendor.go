package dictionary

// Vendor IDs (IANA private enterprise numbers)
const (
	VendorArista uint32 = 30065
)

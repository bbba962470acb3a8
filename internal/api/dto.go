package api

import "errors"

// Response statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Validation and request errors reported in Response.Data
var (
	ErrNASIPMissing   = errors.New("NAS IP address missing")
	ErrNASPortMissing = errors.New("NAS port ID missing")
	ErrSecretMissing  = errors.New("Secret required")
	ErrInvalidBody    = errors.New("Invalid JSON body")
)

// BounceRequest is the body of POST /api/{version}/coa
type BounceRequest struct {
	NASIPAddress string `json:"nas_ip_address"`
	NASPortID    string `json:"nas_port_id"`
	Secret       string `json:"secret"`
}

// Validate checks the fields in a fixed order; empty strings count as missing
func (r *BounceRequest) Validate() error {
	if r.NASIPAddress == "" {
		return ErrNASIPMissing
	}
	if r.NASPortID == "" {
		return ErrNASPortMissing
	}
	if r.Secret == "" {
		return ErrSecretMissing
	}
	return nil
}

// Attributes returns the CoA attributes that flap the requested port
func (r *BounceRequest) Attributes() map[string]string {
	return map[string]string{
		"NAS-IP-Address":  r.NASIPAddress,
		"NAS-Port-Id":     r.NASPortID,
		"Arista-PortFlap": "1",
	}
}

// Response is the envelope of every API answer
type Response struct {
	Status string `json:"status"`
	Data   string `json:"data"`
}

func successResponse(data string) Response {
	return Response{Status: StatusSuccess, Data: data}
}

func errorResponse(data string) Response {
	return Response{Status: StatusError, Data: data}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

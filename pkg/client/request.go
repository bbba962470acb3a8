package client

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"

	"github.com/vitalvas/portbounce/pkg/crypto"
	"github.com/vitalvas/portbounce/pkg/dictionary"
	"github.com/vitalvas/portbounce/pkg/packet"
)

// Request is one CoA to send to a NAS
type Request struct {
	// NASAddress is a hostname or IP, optionally with an explicit port
	NASAddress string
	Secret     []byte
	// Attributes maps dictionary names to textual values
	Attributes map[string]string
}

// BuildRequest encodes and signs a CoA-Request without sending it
func BuildRequest(req Request, identifier uint8) (*packet.Packet, error) {
	return buildRequest(req, identifier, false)
}

func buildRequest(req Request, identifier uint8, withMessageAuth bool) (*packet.Packet, error) {
	if req.NASAddress == "" {
		return nil, newError(KindValidation, "NAS address missing")
	}

	if err := crypto.ValidateSharedSecret(req.Secret); err != nil {
		return nil, &Error{Kind: KindValidation, Err: fmt.Errorf("invalid shared secret: %w", err)}
	}

	if len(req.Attributes) == 0 {
		return nil, newError(KindValidation, "no attributes to send")
	}

	type pair struct {
		attr  dictionary.Attr
		value string
	}

	names := make([]string, 0, len(req.Attributes))
	for name := range req.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]pair, 0, len(names))
	for _, name := range names {
		attr, err := dictionary.Parse(name)
		if err != nil {
			return nil, &Error{Kind: KindEncoding, Err: err}
		}
		pairs = append(pairs, pair{attr: attr, value: req.Attributes[name]})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].attr < pairs[j].attr })

	pkt := packet.New(packet.CodeCoARequest, identifier)
	for _, p := range pairs {
		attr, err := p.attr.Encode(p.value)
		if err != nil {
			return nil, &Error{Kind: KindEncoding, Err: err}
		}
		pkt.AddAttribute(attr)
	}

	if err := pkt.SignRequest(req.Secret, withMessageAuth); err != nil {
		return nil, &Error{Kind: KindEncoding, Err: fmt.Errorf("failed to sign request: %w", err)}
	}

	if err := pkt.IsValid(); err != nil {
		return nil, &Error{Kind: KindEncoding, Err: fmt.Errorf("invalid packet: %w", err)}
	}

	return pkt, nil
}

func newIdentifier() (uint8, error) {
	identifier := make([]byte, 1)
	if _, err := rand.Read(identifier); err != nil {
		return 0, fmt.Errorf("failed to generate identifier: %w", err)
	}
	return identifier[0], nil
}

// nasAddress appends the CoA port unless the address already names one
func nasAddress(addr string, port int) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, strconv.Itoa(port))
}

var errNoErrorCause = errors.New("no Error-Cause")

// errorCause extracts the RFC 5176 Error-Cause of a response
func errorCause(resp *packet.Packet) (uint32, error) {
	attr, ok := resp.GetAttribute(packet.AttributeTypeErrorCause)
	if !ok {
		return 0, errNoErrorCause
	}
	return packet.DecodeUint32(attr.Value)
}

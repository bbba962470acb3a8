// Package client sends RADIUS CoA-Requests (RFC 5176) to a NAS over UDP.
package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/vitalvas/portbounce/pkg/dictionary"
	"github.com/vitalvas/portbounce/pkg/log"
	"github.com/vitalvas/portbounce/pkg/metrics"
	"github.com/vitalvas/portbounce/pkg/packet"
)

const (
	// DefaultPort is the CoA port of RFC 5176
	DefaultPort = 3799
	// DefaultTimeout bounds the wait for a response
	DefaultTimeout = 30 * time.Second

	// SuccessMessage is the Result message of an acknowledged request
	SuccessMessage = "Port bounced"
	// FailurePrefix starts every failed Result message
	FailurePrefix = "Failed to send CoA packet"
)

// Outcome is the verdict of Send
type Outcome int

const (
	Failure Outcome = iota
	Success
)

func (o Outcome) String() string {
	if o == Success {
		return "success"
	}
	return "failure"
}

// Result reports how a CoA exchange ended. Code is zero and Response nil
// when no response arrived; ErrorCause is zero unless the NAS sent one.
type Result struct {
	Outcome    Outcome
	Message    string
	Code       packet.Code
	ErrorCause uint32
	Response   *packet.Packet
	Err        error
}

// OK reports whether the outcome is Success
func (r Result) OK() bool {
	return r.Outcome == Success
}

// Config configures a Client. Zero values select the defaults.
type Config struct {
	Port                    int
	Timeout                 time.Duration
	UseMessageAuthenticator bool
	// StrictAck turns a CoA-NAK into a Failure
	StrictAck bool
	Logger    log.Logger
	Metrics   *metrics.CoAMetrics
}

// Client sends CoA-Requests. It holds no connection state and is safe for
// concurrent use; every exchange opens its own UDP socket.
type Client struct {
	port           int
	timeout        time.Duration
	useMessageAuth bool
	strictAck      bool
	logger         log.Logger
	metrics        *metrics.CoAMetrics
}

func New(cfg Config) (*Client, error) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid CoA port: %d", cfg.Port)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("invalid timeout: %s", cfg.Timeout)
	}

	if cfg.Logger == nil {
		cfg.Logger = log.NewDefaultLogger()
	}

	return &Client{
		port:           cfg.Port,
		timeout:        cfg.Timeout,
		useMessageAuth: cfg.UseMessageAuthenticator,
		strictAck:      cfg.StrictAck,
		logger:         cfg.Logger,
		metrics:        cfg.Metrics,
	}, nil
}

// Timeout returns the per-exchange response timeout
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// BuildRequest encodes and signs a CoA-Request with the client's options
func (c *Client) BuildRequest(req Request, identifier uint8) (*packet.Packet, error) {
	return buildRequest(req, identifier, c.useMessageAuth)
}

// Send performs one CoA exchange and never returns an error: every failure
// becomes a Failure result whose Err is a *Error.
func (c *Client) Send(ctx context.Context, req Request) Result {
	start := time.Now()

	resp, err := c.Exchange(ctx, req)
	if err != nil {
		return c.failure(start, err)
	}

	result := Result{
		Outcome:  Success,
		Message:  SuccessMessage,
		Code:     resp.Code,
		Response: resp,
	}

	if cause, err := errorCause(resp); err == nil {
		result.ErrorCause = cause
	}

	if resp.Code.IsNak() {
		logger := c.logger.WithFields(log.Fields{
			"nas":         req.NASAddress,
			"error_cause": dictionary.ErrorCauseString(result.ErrorCause),
		})

		if c.strictAck {
			logger.Warn("NAS rejected CoA-Request")
			nakErr := newError(KindRejected, "NAS answered %s (Error-Cause %s)",
				resp.Code, dictionary.ErrorCauseString(result.ErrorCause))
			failed := c.failure(start, nakErr)
			failed.Code = result.Code
			failed.ErrorCause = result.ErrorCause
			failed.Response = resp
			return failed
		}

		logger.Info("NAS answered CoA-NAK, treating as delivered")
	}

	c.metrics.ObserveDuration(Success.String(), time.Since(start))
	return result
}

func (c *Client) failure(start time.Time, err error) Result {
	kind := KindOf(err)
	c.metrics.ExchangeFailed(kind.String())
	c.metrics.ObserveDuration(Failure.String(), time.Since(start))

	return Result{
		Outcome: Failure,
		Message: fmt.Sprintf("%s: %s", FailurePrefix, err),
		Err:     err,
	}
}

// Exchange sends one CoA-Request and returns the verified response.
// Errors are always *Error.
func (c *Client) Exchange(ctx context.Context, req Request) (*packet.Packet, error) {
	identifier, err := newIdentifier()
	if err != nil {
		return nil, &Error{Kind: KindEncoding, Err: err}
	}

	pkt, err := c.BuildRequest(req, identifier)
	if err != nil {
		return nil, err
	}

	return c.sendRequest(ctx, nasAddress(req.NASAddress, c.port), req.Secret, pkt)
}

func (c *Client) sendRequest(ctx context.Context, addr string, secret []byte, pkt *packet.Packet) (*packet.Packet, error) {
	logger := c.logger.WithFields(log.Fields{
		"nas":        addr,
		"identifier": pkt.Identifier,
	})

	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("request cancelled: %w", err)}
	}

	data, err := pkt.Encode()
	if err != nil {
		return nil, &Error{Kind: KindEncoding, Err: fmt.Errorf("failed to encode packet: %w", err)}
	}

	// A new socket per request keeps concurrent exchanges independent
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "udp", addr)
	if err != nil {
		return nil, classify(ctx, addr, fmt.Errorf("failed to dial: %w", err))
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("failed to set deadline: %w", err)}
	}

	// Cancellation unblocks the pending read
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	if _, err := conn.Write(data); err != nil {
		return nil, classify(ctx, addr, fmt.Errorf("failed to write packet: %w", err))
	}
	c.metrics.RequestSent(pkt.Code.String())
	logger.Debugf("sent %s, %d bytes", pkt.Code, len(data))

	buffer := make([]byte, packet.MaxPacketLength)
	n, err := conn.Read(buffer)
	if err != nil {
		return nil, classify(ctx, addr, fmt.Errorf("failed to read response: %w", err))
	}

	resp, err := packet.Decode(buffer[:n])
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if err := verifyResponse(pkt, resp, secret); err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	c.metrics.ResponseReceived(resp.Code.String())
	logger.Debugf("received %s", resp.Code)

	return resp, nil
}

// verifyResponse applies the RFC 2865 and RFC 5176 checks to a reply
func verifyResponse(req, resp *packet.Packet, secret []byte) error {
	if resp.Identifier != req.Identifier {
		return fmt.Errorf("response identifier mismatch: expected %d, got %d", req.Identifier, resp.Identifier)
	}

	if !req.Code.IsExpectedResponse(resp.Code) {
		return fmt.Errorf("unexpected response code %s to %s", resp.Code, req.Code)
	}

	if !resp.VerifyResponseAuthenticator(secret, req.Authenticator) {
		return fmt.Errorf("response authenticator verification failed")
	}

	if resp.HasMessageAuthenticator() && !resp.VerifyMessageAuthenticator(secret, req.Authenticator) {
		return fmt.Errorf("message authenticator verification failed")
	}

	return nil
}

// classify maps a socket error onto a Kind. An expired deadline is a timeout;
// caller cancellation is a transport failure.
func classify(ctx context.Context, addr string, err error) *Error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return &Error{Kind: KindTransport, Err: fmt.Errorf("request cancelled: %w", err)}
	}

	var netErr net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Err: fmt.Errorf("timeout waiting for response from %s: %w", addr, err)}
	}

	return &Error{Kind: KindTransport, Err: err}
}

package api

import (
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
	"layeh.com/radius/rfc2869"

	"github.com/vitalvas/portbounce/pkg/client"
	"github.com/vitalvas/portbounce/pkg/log"
)

// startLayehNAS answers CoA-Requests signed with secret, reporting each one on received
func startLayehNAS(t *testing.T, secret []byte, reply bool) (string, <-chan *radius.Packet) {
	t.Helper()

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	received := make(chan *radius.Packet, 4)
	go func() {
		buf := make([]byte, 4096)
		for {
			n, addr, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			if !radius.IsAuthenticRequest(buf[:n], secret) {
				continue
			}
			req, err := radius.Parse(buf[:n], secret)
			if err != nil {
				continue
			}
			received <- req

			if !reply {
				continue
			}
			resp, err := req.Response(radius.CodeCoAACK).Encode()
			if err != nil {
				continue
			}
			_, _ = conn.WriteTo(resp, addr)
		}
	}()

	return conn.LocalAddr().String(), received
}

func newBounceRouter(t *testing.T, port int, timeout time.Duration) *gin.Engine {
	t.Helper()

	c, err := client.New(client.Config{
		Port:    port,
		Timeout: timeout,
		Logger:  log.NewNopLogger(),
	})
	require.NoError(t, err)

	engine, _ := newTestRouter(t, c)
	return engine
}

func nasPort(t *testing.T, addr string) int {
	t.Helper()

	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	require.NoError(t, err)
	return udpAddr.Port
}

func TestBounceEndToEnd(t *testing.T) {
	addr, received := startLayehNAS(t, []byte("testing123"), true)
	engine := newBounceRouter(t, nasPort(t, addr), 2*time.Second)

	w, resp := postCoA(engine, `{"nas_ip_address":"127.0.0.1","nas_port_id":"Gi1/0/1","secret":"testing123"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, Response{Status: "success", Data: "Port bounced"}, resp)

	req := <-received
	assert.Len(t, req.Attributes, 3)
	assert.Equal(t, "127.0.0.1", rfc2865.NASIPAddress_Get(req).String())
	assert.Equal(t, "Gi1/0/1", rfc2869.NASPortID_GetString(req))

	vendorID, value, err := radius.VendorSpecific(req.Get(radius.Type(26)))
	require.NoError(t, err)
	assert.Equal(t, uint32(30065), vendorID)
	assert.Equal(t, []byte{9, 6, 0, 0, 0, 1}, []byte(value))
}

func TestBounceEndToEndTimeout(t *testing.T) {
	addr, received := startLayehNAS(t, []byte("testing123"), false)
	engine := newBounceRouter(t, nasPort(t, addr), 200*time.Millisecond)

	w, resp := postCoA(engine, `{"nas_ip_address":"127.0.0.1","nas_port_id":"Gi1/0/1","secret":"testing123"}`)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Data, "Failed to send CoA packet: timeout")

	<-received
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalvas/portbounce/pkg/client"
	"github.com/vitalvas/portbounce/pkg/log"
)

// CoAHandler serves the port bounce operation
type CoAHandler struct {
	bouncer Bouncer
	logger  log.Logger
}

// NewCoAHandler creates a handler sending CoAs through bouncer
func NewCoAHandler(bouncer Bouncer, logger log.Logger) *CoAHandler {
	return &CoAHandler{
		bouncer: bouncer,
		logger:  logger,
	}
}

// HandleCoA handles POST /api/{version}/coa
func (h *CoAHandler) HandleCoA(c *gin.Context) {
	logger := h.logger.WithField("request_id", c.GetString(RequestIDKey))

	var req BounceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithField("error", err.Error()).Warn("invalid request body")
		c.JSON(http.StatusBadRequest, errorResponse(ErrInvalidBody.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		logger.WithField("error", err.Error()).Warn("invalid bounce request")
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	logger = logger.WithFields(log.Fields{
		"nas_ip_address": req.NASIPAddress,
		"nas_port_id":    req.NASPortID,
		"secret":         log.MaskSecret(req.Secret),
	})
	logger.Info("port bounce requested")

	result := h.bouncer.Send(c.Request.Context(), client.Request{
		NASAddress: req.NASIPAddress,
		Secret:     []byte(req.Secret),
		Attributes: req.Attributes(),
	})

	if !result.OK() {
		status := statusForFailure(result.Err)
		logger.WithFields(log.Fields{
			"kind":        client.KindOf(result.Err).String(),
			"http_status": status,
		}).Warn(result.Message)
		c.JSON(status, errorResponse(result.Message))
		return
	}

	logger.WithField("response_code", result.Code.String()).Info(result.Message)
	c.JSON(http.StatusOK, successResponse(result.Message))
}

// HandleHealth handles GET /health
func (h *CoAHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// statusForFailure maps a CoA failure onto an HTTP status
func statusForFailure(err error) int {
	switch client.KindOf(err) {
	case client.KindTimeout:
		return http.StatusGatewayTimeout
	case client.KindTransport, client.KindRejected:
		return http.StatusBadGateway
	case client.KindEncoding, client.KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

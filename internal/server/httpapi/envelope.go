package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/schemas"
	"github.com/gin-gonic/gin"
)

// requestEnvelope is the outer shape of every write request: a single sealed
// string under "body".
type requestEnvelope struct {
	Body string `json:"body"`
}

// decodeRecord unwraps the request envelope and validates the plaintext
// against the named schema. On failure it writes the error response itself
// and returns ok=false.
func (s *Server) decodeRecord(c *gin.Context, schema string) (map[string]any, bool) {
	var env requestEnvelope
	if err := c.ShouldBindJSON(&env); err != nil || env.Body == "" {
		s.reject(c, http.StatusBadRequest, "Invalid payload")
		return nil, false
	}

	var data map[string]any
	if err := s.box.Open(env.Body, &data); err != nil {
		s.reject(c, http.StatusBadRequest, "Invalid payload")
		return nil, false
	}

	record, err := schemas.Validate(schema, data)
	if err != nil {
		s.reject(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return record, true
}

// respond seals payload and writes it as the whole JSON response body.
func (s *Server) respond(c *gin.Context, status int, payload any) {
	sealed, err := s.box.Seal(payload)
	if err != nil {
		s.logger.Error(c.Request.Context(), "seal error", "error", err.Error())
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(status, sealed)
}

func (s *Server) reject(c *gin.Context, status int, message string) {
	s.respond(c, status, gin.H{"message": message})
}

// writeError maps service errors onto the protocol's status codes and
// client-facing messages. Domain rejections each keep their own message;
// anything unrecognized is logged and reported generically.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrDecryption):
		s.reject(c, http.StatusBadRequest, "Invalid payload")
	case errors.Is(err, common.ErrTokenInvalid):
		s.reject(c, http.StatusBadRequest, "Invalid QR Code")
	case errors.Is(err, common.ErrSessionInvalid):
		s.reject(c, http.StatusBadRequest, "Invalid schedule")
	case errors.Is(err, common.ErrAlreadyMarked):
		s.reject(c, http.StatusBadRequest, "Attendance already marked")
	case errors.Is(err, common.ErrAlreadyExists):
		s.reject(c, http.StatusBadRequest, "Already exists")
	case errors.Is(err, common.ErrNotFound):
		s.reject(c, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		s.reject(c, http.StatusUnauthorized, "Session expired. Log in again")
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		s.reject(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrStoreUnavailable):
		s.reject(c, http.StatusServiceUnavailable, "Service unavailable")
	default:
		s.logger.Error(c.Request.Context(), "request failed", "error", err.Error())
		s.reject(c, http.StatusInternalServerError, "Server error")
	}
}

// intValue reads a numeric field that JSON clients may send as a number or a
// string.
func intValue(record map[string]any, key string) int {
	switch v := record[key].(type) {
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	}
	return 0
}

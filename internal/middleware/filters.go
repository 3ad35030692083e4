package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/gabrielchua/descriptive-theory/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	RequestIDHeader    = "X-Request-ID"
	RequestIDAttribute = "request_id"
)

// Logger tags each request with an id and logs method, path, status and latency.
// The report body is never logged.
func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()

	requestID := req.HeaderParameter(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	req.SetAttribute(RequestIDAttribute, requestID)
	resp.AddHeader(RequestIDHeader, requestID)

	chain.ProcessFilter(req, resp)

	log.Info().
		Str("request_id", requestID).
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Int("status", resp.StatusCode()).
		Dur("latency", time.Since(start)).
		Msg("HTTP request")
}

func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("path", req.Request.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic")
			writeJSON(resp, http.StatusInternalServerError, ErrorResponse{
				Code:    models.CodeUnexpected,
				Message: models.MessageUnexpected,
			})
		}
	}()

	chain.ProcessFilter(req, resp)
}

// RequestID returns the id assigned by Logger, or "" when the filter is not installed.
func RequestID(req *restful.Request) string {
	if id, ok := req.Attribute(RequestIDAttribute).(string); ok {
		return id
	}
	return ""
}

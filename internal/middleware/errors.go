package middleware

import (
	"net/http"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/gabrielchua/descriptive-theory/internal/models"
	"github.com/rs/zerolog/log"
)

// ErrorResponse shares the {code, message} shape of every other response.
type ErrorResponse struct {
	Code    int    `json:"code" description:"Outcome code"`
	Message string `json:"message" description:"Error message"`
}

func HandleError(resp *restful.Response, err error, status int) {
	writeJSON(resp, status, ErrorResponse{Code: status, Message: err.Error()})
}

// HandlePipelineError answers with the envelope code for err. A guardrail reject is an
// ordinary HTTP 200 carrying code 490.
func HandlePipelineError(resp *restful.Response, err error) {
	code, message := models.CodeFor(err)
	if code == models.CodeUnexpected {
		log.Error().Err(err).Msg("Unexpected pipeline error")
	}
	writeJSON(resp, StatusFor(code), ErrorResponse{Code: code, Message: message})
}

// StatusFor maps an envelope code onto the HTTP status line.
func StatusFor(code int) int {
	if code == models.CodeNotMedical {
		return http.StatusOK
	}
	if code < 100 || code > 599 {
		return http.StatusInternalServerError
	}
	return code
}

func writeJSON(resp *restful.Response, status int, body any) {
	if err := resp.WriteHeaderAndJson(status, body, restful.MIME_JSON); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}

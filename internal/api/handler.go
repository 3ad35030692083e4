package api

import (
	"fmt"
	"io"
	"net/http"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/gabrielchua/descriptive-theory/internal/middleware"
	"github.com/gabrielchua/descriptive-theory/internal/models"
	"github.com/gabrielchua/descriptive-theory/internal/pipeline"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	runner pipeline.Runner
	model  string
}

// NewHandler builds the HTTP handlers. model is reported in the stream start event.
func NewHandler(runner pipeline.Runner, model string) *Handler {
	return &Handler{
		runner: runner,
		model:  model,
	}
}

// Ping handles GET / and GET /ping
func (h *Handler) Ping(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndJson(http.StatusOK, models.Envelope{
		Code:    models.CodeOK,
		Message: models.MessageServerUp,
	}, restful.MIME_JSON)
}

// Simplify handles POST /simplify and POST /simplify-text
func (h *Handler) Simplify(req *restful.Request, resp *restful.Response) {
	simplifyRequest, ok := readRequest(req, resp, models.ChannelHTTP)
	if !ok {
		return
	}

	log.Info().
		Str("request_id", simplifyRequest.RequestID).
		Str("language", string(simplifyRequest.Language)).
		Int("text_length", len(simplifyRequest.Text)).
		Msg("Process Simplify")

	result, err := h.runner.Run(req.Request.Context(), simplifyRequest)
	if err != nil {
		middleware.HandlePipelineError(resp, err)
		return
	}

	resp.WriteHeaderAndJson(http.StatusOK, models.NewEnvelope(result, nil), restful.MIME_JSON)
}

// SimplifyStream handles POST /simplify/stream
func (h *Handler) SimplifyStream(req *restful.Request, resp *restful.Response) {
	simplifyRequest, ok := readRequest(req, resp, models.ChannelHTTPStream)
	if !ok {
		return
	}

	log.Info().
		Str("request_id", simplifyRequest.RequestID).
		Str("language", string(simplifyRequest.Language)).
		Int("text_length", len(simplifyRequest.Text)).
		Msg("Process Simplify Stream")

	flusher, ok := resp.ResponseWriter.(http.Flusher)
	if !ok {
		middleware.HandleError(resp, fmt.Errorf("streaming not supported"), http.StatusInternalServerError)
		return
	}

	chunks, err := h.runner.Stream(req.Request.Context(), simplifyRequest)
	if err != nil {
		middleware.HandlePipelineError(resp, err)
		return
	}

	writer := resp.ResponseWriter
	started := false

	for chunk, err := range chunks {
		if err != nil {
			if !started {
				middleware.HandlePipelineError(resp, err)
				return
			}
			code, message := models.CodeFor(err)
			log.Error().Err(err).Str("request_id", simplifyRequest.RequestID).Msg("Stream failed after start")
			writeEvent(writer, flusher, SSEEvent{Event: "error", Data: StreamErrorEvent{Code: code, Error: message}})
			return
		}

		if !started {
			started = true
			resp.AddHeader("Content-Type", "text/event-stream")
			resp.AddHeader("Cache-Control", "no-cache")
			resp.AddHeader("Connection", "keep-alive")
			resp.AddHeader("X-Accel-Buffering", "no")
			resp.WriteHeader(http.StatusOK)

			writeEvent(writer, flusher, SSEEvent{
				Event: "start",
				Data:  StreamStartEvent{RequestID: simplifyRequest.RequestID, Model: h.model},
			})
		}

		if !writeEvent(writer, flusher, SSEEvent{Event: "chunk", Data: StreamChunkEvent{Text: chunk}}) {
			return
		}
	}

	if !started {
		middleware.HandlePipelineError(resp, models.ErrEmptyCompletion)
		return
	}

	writeEvent(writer, flusher, SSEEvent{Event: "done", Data: StreamDoneEvent{}})
}

func readRequest(req *restful.Request, resp *restful.Response, channel models.Channel) (models.SimplifyRequest, bool) {
	var simplifyRequest models.SimplifyRequest

	if err := req.ReadEntity(&simplifyRequest); err != nil {
		log.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return simplifyRequest, false
	}

	simplifyRequest.SetDefaults()
	simplifyRequest.RequestID = middleware.RequestID(req)
	simplifyRequest.Channel = channel
	return simplifyRequest, true
}

// writeEvent reports false when the client has gone away.
func writeEvent(writer io.Writer, flusher http.Flusher, event SSEEvent) bool {
	formatted, err := event.Format()
	if err != nil {
		log.Error().Err(err).Str("event", event.Event).Msg("Failed to format event")
		return true
	}

	if _, err := fmt.Fprint(writer, formatted); err != nil {
		log.Warn().Err(err).Msg("Client disconnected during stream")
		return false
	}
	flusher.Flush()
	return true
}

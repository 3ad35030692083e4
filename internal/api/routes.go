package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"github.com/gabrielchua/descriptive-theory/internal/middleware"
	"github.com/gabrielchua/descriptive-theory/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoints
	ws.
		Route(ws.GET("/").
			To(handler.Ping).
			Operation("root").
			Doc("Liveness check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(models.Envelope{}).
			Returns(200, "OK", models.Envelope{}))

	ws.
		Route(ws.GET("/ping").
			To(handler.Ping).
			Operation("ping").
			Doc("Liveness check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(models.Envelope{}).
			Returns(200, "OK", models.Envelope{}))

	ws.
		Route(simplifyRoute(ws.POST("/simplify"), handler).
			Operation("simplify"))

	// Legacy alias
	ws.
		Route(simplifyRoute(ws.POST("/simplify-text"), handler).
			Operation("simplifyText"))

	ws.
		Route(ws.POST("/simplify/stream").
			To(handler.SimplifyStream).
			Operation("simplifyStream").
			Consumes(restful.MIME_JSON).
			Produces("text/event-stream", restful.MIME_JSON).
			Doc("Stream a simplified medical report").
			Metadata(restfulspec.KeyOpenAPITags, []string{"simplify"}).
			Reads(models.SimplifyRequest{}).
			Returns(200, "OK", nil).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}).
			Returns(503, "Service Unavailable", middleware.ErrorResponse{}))

	container.Add(ws)
}

func simplifyRoute(builder *restful.RouteBuilder, handler *Handler) *restful.RouteBuilder {
	return builder.
		To(handler.Simplify).
		Doc("Simplify a medical report").
		Metadata(restfulspec.KeyOpenAPITags, []string{"simplify"}).
		Reads(models.SimplifyRequest{}).
		Writes(models.Envelope{}).
		Returns(200, "OK, or code 490 when the text is not medical", models.Envelope{}).
		Returns(400, "Bad Request", middleware.ErrorResponse{}).
		Returns(500, "Internal Server Error", middleware.ErrorResponse{}).
		Returns(503, "Service Unavailable", middleware.ErrorResponse{})
}

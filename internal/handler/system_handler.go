package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joaobosco/lembretes/internal/docs"
	"github.com/joaobosco/lembretes/internal/pkg/response"
)

type apiInfo struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Description   string `json:"description"`
	Author        string `json:"author"`
	Documentation string `json:"documentation"`
}

// SystemHandler serves the health check, the API info and the favicon.
type SystemHandler struct {
	info apiInfo
}

func NewSystemHandler(version string) *SystemHandler {
	return &SystemHandler{info: apiInfo{
		Name:          "API de Lembretes",
		Version:       version,
		Description:   "API REST para gerenciamento de usuários e lembretes",
		Author:        "João Bosco",
		Documentation: "/docs",
	}}
}

func (h *SystemHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{"ok": true, "message": "Api de Lembretes - João"})
}

func (h *SystemHandler) Info(c *gin.Context) {
	response.Success(c, h.info)
}

func (h *SystemHandler) Favicon(c *gin.Context) {
	response.NoContent(c)
}

func (h *SystemHandler) Routes() RouteSet {
	return RouteSet{
		Tag: docs.Tag{Name: "Sistema", Description: "Informações da API"},
		Routes: []Route{
			{
				Method: http.MethodGet, Path: "", Handler: h.Info,
				Doc: docs.Operation{
					Summary: "Informações da API",
					Responses: map[string]docs.Response{
						"200": docs.JSONResponse("Nome, versão e documentação", &docs.Schema{Type: "object"}),
					},
				},
			},
		},
	}
}

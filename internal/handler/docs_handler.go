package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"

	"github.com/joaobosco/lembretes/internal/docs"
)

const (
	docsJSONPath = "/docs.json"
	docsYAMLPath = "/docs.yaml"
)

type DocsHandler struct {
	doc    *docs.OpenAPI
	yaml   []byte
	viewer string
}

func NewDocsHandler(doc *docs.OpenAPI) (*DocsHandler, error) {
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return &DocsHandler{
		doc:    doc,
		yaml:   raw,
		viewer: docs.ViewerHTML(doc.Info.Title, docsJSONPath),
	}, nil
}

func (h *DocsHandler) JSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.doc)
}

func (h *DocsHandler) YAML(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", h.yaml)
}

func (h *DocsHandler) Viewer(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(h.viewer))
}

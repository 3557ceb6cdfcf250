package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joaobosco/lembretes/internal/docs"
	"github.com/joaobosco/lembretes/internal/middleware"
	appErr "github.com/joaobosco/lembretes/internal/pkg/errors"
)

const msgInvalidJSON = "JSON inválido"

// Route pairs a gin handler with its API documentation. Path is relative to
// the /api prefix.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Secured bool
	Doc     docs.Operation
}

// RouteSet is what a resource handler contributes to the router and the
// API document.
type RouteSet struct {
	Tag     docs.Tag
	Schemas map[string]*docs.Schema
	Routes  []Route
}

// handleError hands err to the error middleware.
func handleError(c *gin.Context, err error) {
	_ = c.Error(err)
}

// bindJSON decodes the request body into dest. An empty body leaves dest
// untouched. Type mismatches are reported with the message registered for
// the offending field.
func bindJSON(c *gin.Context, dest interface{}, fieldMessages map[string]string) error {
	err := c.ShouldBindJSON(dest)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return appErr.New(appErr.ErrTooLarge, middleware.MsgBodyTooLarge)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if msg, ok := fieldMessages[typeErr.Field]; ok {
			return appErr.Wrap(appErr.ErrInvalid, msg, err)
		}
		if typeErr.Field != "" {
			return appErr.Wrap(appErr.ErrInvalid, "campo inválido: "+typeErr.Field, err)
		}
	}
	return appErr.Wrap(appErr.ErrInvalid, msgInvalidJSON, err)
}

func uuidSchema() *docs.Schema {
	return &docs.Schema{Type: "string", Format: "uuid"}
}

func idParam(description string) docs.Parameter {
	return docs.PathParam("id", description, uuidSchema())
}

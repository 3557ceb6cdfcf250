// Package docs assembles the OpenAPI document from the route annotations
// registered by each handler and serves it with an embedded viewer.
package docs

import (
	_ "embed"
	"fmt"
	"net/http"
	"strings"
)

const (
	openAPIVersion = "3.0.3"
	BearerScheme   = "bearerAuth"
	mediaJSON      = "application/json"
)

//go:embed viewer.html
var viewerHTML string

type Builder struct {
	doc OpenAPI
}

func NewBuilder(info Info, servers ...Server) *Builder {
	return &Builder{doc: OpenAPI{
		OpenAPI: openAPIVersion,
		Info:    info,
		Servers: servers,
		Paths:   map[string]PathItem{},
		Components: &Components{
			Schemas: map[string]*Schema{},
			SecuritySchemes: map[string]*SecurityScheme{
				BearerScheme: {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
			},
		},
	}}
}

func (b *Builder) AddTag(tag Tag) {
	for _, existing := range b.doc.Tags {
		if existing.Name == tag.Name {
			return
		}
	}
	b.doc.Tags = append(b.doc.Tags, tag)
}

func (b *Builder) AddSchema(name string, schema *Schema) {
	b.doc.Components.Schemas[name] = schema
}

// AddOperation documents method on a gin-style path ("/api/users/:id").
// Secured operations require the bearer scheme.
func (b *Builder) AddOperation(method, path string, op Operation, secured bool) error {
	if secured {
		op.Security = []SecurityRequirement{{BearerScheme: {}}}
	}
	if op.Responses == nil {
		op.Responses = map[string]Response{}
	}
	key := OpenAPIPath(path)
	item := b.doc.Paths[key]
	switch method {
	case http.MethodGet:
		item.Get = &op
	case http.MethodPost:
		item.Post = &op
	case http.MethodPut:
		item.Put = &op
	case http.MethodPatch:
		item.Patch = &op
	case http.MethodDelete:
		item.Delete = &op
	default:
		return fmt.Errorf("unsupported method %s for %s", method, path)
	}
	b.doc.Paths[key] = item
	return nil
}

func (b *Builder) Document() *OpenAPI {
	doc := b.doc
	return &doc
}

// OpenAPIPath rewrites ":param" segments as "{param}".
func OpenAPIPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// ViewerHTML renders the browser viewer pointing at specURL.
func ViewerHTML(title, specURL string) string {
	r := strings.NewReplacer("{{TITLE}}", title, "{{SPEC_URL}}", specURL)
	return r.Replace(viewerHTML)
}

func Ref(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}

func Bound(v float64) *float64 {
	return &v
}

func JSONBody(schema *Schema, required bool) *RequestBody {
	return &RequestBody{
		Required: required,
		Content:  map[string]MediaType{mediaJSON: {Schema: schema}},
	}
}

func JSONResponse(description string, schema *Schema) Response {
	return Response{
		Description: description,
		Content:     map[string]MediaType{mediaJSON: {Schema: schema}},
	}
}

// ErrorResponse documents the {"error": "..."} body.
func ErrorResponse(description string) Response {
	return JSONResponse(description, Ref("Erro"))
}

func PathParam(name, description string, schema *Schema) Parameter {
	return Parameter{Name: name, In: "path", Description: description, Required: true, Schema: schema}
}

func QueryParam(name, description string, schema *Schema) Parameter {
	return Parameter{Name: name, In: "query", Description: description, Schema: schema}
}

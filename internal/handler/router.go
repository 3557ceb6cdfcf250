package handler

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/joaobosco/lembretes/internal/config"
	"github.com/joaobosco/lembretes/internal/docs"
	"github.com/joaobosco/lembretes/internal/middleware"
)

const apiPrefix = "/api"

type RouterDeps struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Reminders *ReminderHandler
	System    *SystemHandler
	Tokens    middleware.TokenVerifier
	Docs      config.DocsConfig
	CORS      []string
	BodyLimit int64
}

func (d RouterDeps) routeSets() []RouteSet {
	return []RouteSet{d.System.Routes(), d.Auth.Routes(), d.Users.Routes(), d.Reminders.Routes()}
}

// NewRouter builds the engine: global middleware, the public routes, the
// bearer-protected resources under /api and the documentation endpoints.
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	sets := deps.routeSets()
	doc, err := BuildDocument(deps.Docs, sets...)
	if err != nil {
		return nil, err
	}
	docsHandler, err := NewDocsHandler(doc)
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	_ = engine.SetTrustedProxies(nil)
	// Anything that writes an error body must run inside gzip.
	engine.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.SecureHeaders(),
		middleware.CORS(deps.CORS),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.BodyLimit(deps.BodyLimit),
	)
	engine.NoRoute(middleware.NotFound)

	engine.GET("/", deps.System.Health)
	engine.GET("/favicon.ico", deps.System.Favicon)
	engine.GET("/docs", docsHandler.Viewer)
	engine.GET(docsJSONPath, docsHandler.JSON)
	engine.GET(docsYAMLPath, docsHandler.YAML)

	api := engine.Group(apiPrefix)
	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.Tokens))
	for _, set := range sets {
		for _, route := range set.Routes {
			group := api
			if route.Secured {
				group = authGroup
			}
			group.Handle(route.Method, route.Path, route.Handler)
		}
	}
	return engine, nil
}

// BuildDocument assembles the OpenAPI document from the route sets.
func BuildDocument(cfg config.DocsConfig, sets ...RouteSet) (*docs.OpenAPI, error) {
	b := docs.NewBuilder(docs.Info{
		Title:       cfg.Title,
		Version:     cfg.Version,
		Description: "API REST de usuários e lembretes com autenticação por token Bearer.",
	}, docs.Server{URL: cfg.ServerURL})
	b.AddSchema("Erro", &docs.Schema{
		Type:       "object",
		Properties: map[string]*docs.Schema{"error": {Type: "string"}},
	})
	for _, set := range sets {
		b.AddTag(set.Tag)
		for name, schema := range set.Schemas {
			b.AddSchema(name, schema)
		}
		for _, route := range set.Routes {
			op := route.Doc
			op.Tags = append([]string{set.Tag.Name}, op.Tags...)
			if route.Secured {
				if op.Responses == nil {
					op.Responses = map[string]docs.Response{}
				}
				op.Responses["401"] = docs.ErrorResponse("Token ausente")
				op.Responses["403"] = docs.ErrorResponse("Token inválido ou expirado")
			}
			if err := b.AddOperation(route.Method, apiPrefix+route.Path, op, route.Secured); err != nil {
				return nil, err
			}
		}
	}
	return b.Document(), nil
}

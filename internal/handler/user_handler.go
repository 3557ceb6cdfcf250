package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joaobosco/lembretes/internal/docs"
	"github.com/joaobosco/lembretes/internal/pkg/response"
	"github.com/joaobosco/lembretes/internal/service"
)

const tagUsers = "Usuários"

var userFieldMessages = map[string]string{
	"name":       service.MsgNameRequired,
	"age":        service.MsgInvalidAge,
	"email":      service.MsgInvalidEmail,
	"password":   service.MsgEmptyPassword,
	"profession": "profession deve ser texto",
}

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserInput
	if err := bindJSON(c, &req, userFieldMessages); err != nil {
		handleError(c, err)
		return
	}
	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req service.UpdateUserInput
	if err := bindJSON(c, &req, userFieldMessages); err != nil {
		handleError(c, err)
		return
	}
	user, err := h.users.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *UserHandler) Routes() RouteSet {
	input := func(required ...string) *docs.Schema {
		return &docs.Schema{
			Type:     "object",
			Required: required,
			Properties: map[string]*docs.Schema{
				"name":       {Type: "string"},
				"age":        {Type: "integer", Minimum: docs.Bound(0), Nullable: true},
				"profession": {Type: "string", Nullable: true},
				"email":      {Type: "string", Format: "email", Nullable: true},
				"password":   {Type: "string", WriteOnly: true},
			},
		}
	}
	return RouteSet{
		Tag: docs.Tag{Name: tagUsers, Description: "CRUD de Usuários"},
		Schemas: map[string]*docs.Schema{
			"Usuario": {
				Type: "object",
				Properties: map[string]*docs.Schema{
					"id":         uuidSchema(),
					"name":       {Type: "string"},
					"email":      {Type: "string", Format: "email", Nullable: true},
					"age":        {Type: "integer", Minimum: docs.Bound(0), Nullable: true},
					"profession": {Type: "string", Nullable: true},
					"created_at": {Type: "string", Format: "date-time", ReadOnly: true},
					"last_login": {Type: "string", Format: "date-time", ReadOnly: true, Nullable: true},
				},
			},
		},
		Routes: []Route{
			{
				Method: http.MethodGet, Path: "/users", Handler: h.List, Secured: true,
				Doc: docs.Operation{
					Summary: "Listar usuários",
					Responses: map[string]docs.Response{
						"200": docs.JSONResponse("Lista de usuários", docs.ArrayOf(docs.Ref("Usuario"))),
					},
				},
			},
			{
				Method: http.MethodGet, Path: "/users/:id", Handler: h.Get, Secured: true,
				Doc: docs.Operation{
					Summary:    "Obter usuário por ID",
					Parameters: []docs.Parameter{idParam("ID do usuário")},
					Responses: map[string]docs.Response{
						"200": docs.JSONResponse("Usuário encontrado", docs.Ref("Usuario")),
						"404": docs.ErrorResponse("Usuário não encontrado"),
					},
				},
			},
			{
				Method: http.MethodPost, Path: "/users", Handler: h.Create, Secured: true,
				Doc: docs.Operation{
					Summary:     "Criar usuário",
					RequestBody: docs.JSONBody(input("name"), true),
					Responses: map[string]docs.Response{
						"201": docs.JSONResponse("Usuário criado", docs.Ref("Usuario")),
						"400": docs.ErrorResponse("Requisição inválida"),
						"409": docs.ErrorResponse("Email já cadastrado"),
					},
				},
			},
			{
				Method: http.MethodPatch, Path: "/users/:id", Handler: h.Update, Secured: true,
				Doc: docs.Operation{
					Summary:     "Atualizar usuário (parcial)",
					Parameters:  []docs.Parameter{idParam("ID do usuário")},
					RequestBody: docs.JSONBody(input(), true),
					Responses: map[string]docs.Response{
						"200": docs.JSONResponse("Usuário atualizado", docs.Ref("Usuario")),
						"400": docs.ErrorResponse("Requisição inválida"),
						"404": docs.ErrorResponse("Usuário não encontrado"),
					},
				},
			},
			{
				Method: http.MethodDelete, Path: "/users/:id", Handler: h.Delete, Secured: true,
				Doc: docs.Operation{
					Summary:    "Excluir usuário",
					Parameters: []docs.Parameter{idParam("ID do usuário")},
					Responses: map[string]docs.Response{
						"204": {Description: "Excluído"},
						"404": docs.ErrorResponse("Usuário não encontrado"),
					},
				},
			},
		},
	}
}

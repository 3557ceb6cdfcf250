package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joaobosco/lembretes/internal/docs"
	"github.com/joaobosco/lembretes/internal/pkg/response"
	"github.com/joaobosco/lembretes/internal/service"
)

const msgMissingCredentials = "Informe email e password."

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	fieldMessages := map[string]string{"email": msgMissingCredentials, "password": msgMissingCredentials}
	if err := bindJSON(c, &req, fieldMessages); err != nil {
		handleError(c, err)
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *AuthHandler) Routes() RouteSet {
	return RouteSet{
		Tag: docs.Tag{Name: "Auth", Description: "Autenticação"},
		Schemas: map[string]*docs.Schema{
			"LoginRequest": {
				Type:     "object",
				Required: []string{"email", "password"},
				Properties: map[string]*docs.Schema{
					"email":    {Type: "string", Format: "email", Example: "joao@teste.com"},
					"password": {Type: "string", Example: "12345"},
				},
			},
			"LoginResponse": {
				Type: "object",
				Properties: map[string]*docs.Schema{
					"message":   {Type: "string", Example: "Login bem-sucedido"},
					"token":     {Type: "string"},
					"expiresIn": {Type: "string", Example: "2h"},
					"user": {
						Type: "object",
						Properties: map[string]*docs.Schema{
							"id":    uuidSchema(),
							"name":  {Type: "string"},
							"email": {Type: "string", Format: "email"},
						},
					},
				},
			},
		},
		Routes: []Route{
			{
				Method: http.MethodPost, Path: "/login", Handler: h.Login,
				Doc: docs.Operation{
					Summary:     "Autenticar e obter token",
					RequestBody: docs.JSONBody(docs.Ref("LoginRequest"), true),
					Responses: map[string]docs.Response{
						"200": docs.JSONResponse("Login bem-sucedido", docs.Ref("LoginResponse")),
						"400": docs.ErrorResponse("Email ou password ausentes"),
						"401": docs.ErrorResponse("Credenciais inválidas"),
						"500": docs.ErrorResponse("Falha ao autenticar"),
					},
				},
			},
		},
	}
}

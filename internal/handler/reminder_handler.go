package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joaobosco/lembretes/internal/docs"
	"github.com/joaobosco/lembretes/internal/pkg/response"
	"github.com/joaobosco/lembretes/internal/service"
	"github.com/joaobosco/lembretes/internal/validator"
)

const tagReminders = "Lembretes"

var reminderFieldMessages = map[string]string{
	"description": service.MsgDescriptionRequired,
	"priority":    service.MsgInvalidPriority,
	"user_id":     service.MsgUserIDRequired,
	"time":        service.MsgInvalidTime,
}

type ReminderHandler struct {
	reminders *service.ReminderService
}

func NewReminderHandler(reminders *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

func (h *ReminderHandler) List(c *gin.Context) {
	reminders, err := h.reminders.List(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, reminders)
}

func (h *ReminderHandler) Get(c *gin.Context) {
	reminder, err := h.reminders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, reminder)
}

func (h *ReminderHandler) Create(c *gin.Context) {
	var req service.CreateReminderInput
	if err := bindJSON(c, &req, reminderFieldMessages); err != nil {
		handleError(c, err)
		return
	}
	reminder, err := h.reminders.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, reminder)
}

func (h *ReminderHandler) Update(c *gin.Context) {
	var req service.UpdateReminderInput
	if err := bindJSON(c, &req, reminderFieldMessages); err != nil {
		handleError(c, err)
		return
	}
	reminder, err := h.reminders.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, reminder)
}

func (h *ReminderHandler) Delete(c *gin.Context) {
	if err := h.reminders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *ReminderHandler) Routes() RouteSet {
	clock := func(example string) *docs.Schema {
		return &docs.Schema{Type: "string", Example: example, Pattern: validator.ClockPattern()}
	}
	priority := &docs.Schema{Type: "integer", Minimum: docs.Bound(1), Maximum: docs.Bound(5)}
	input := func(example string, required ...string) *docs.Schema {
		return &docs.Schema{
			Type:     "object",
			Required: required,
			Properties: map[string]*docs.Schema{
				"description": {Type: "string"},
				"priority":    priority,
				"user_id":     uuidSchema(),
				"time":        clock(example),
			},
		}
	}
	return RouteSet{
		Tag: docs.Tag{Name: tagReminders, Description: "CRUD de Lembretes"},
		Schemas: map[string]*docs.Schema{
			"Lembrete": {
				Type: "object",
				Properties: map[string]*docs.Schema{
					"id":          uuidSchema(),
					"description": {Type: "string"},
					"priority":    priority,
					"user_id":     uuidSchema(),
					"time":        clock("12:00"),
				},
			},
		},
		Routes: []Route{
			{
				Method: http.MethodGet, Path: "/reminders", Handler: h.List, Secured: true,
				Doc: docs.Operation{
					Summary:    "Listar lembretes (filtro opcional por user_id)",
					Parameters: []docs.Parameter{docs.QueryParam("user_id", "Filtra pelo dono do lembrete", uuidSchema())},
					Responses: map[string]docs.Response{
						"200": docs.JSONResponse("Lista de lembretes", docs.ArrayOf(docs.Ref("Lembrete"))),
					},
				},
			},
			{
				Method: http.MethodGet, Path: "/reminders/:id", Handler: h.Get, Secured: true,
				Doc: docs.Operation{
					Summary:    "Obter lembrete por ID",
					Parameters: []docs.Parameter{idParam("ID do lembrete")},
					Responses: map[string]docs.Response{
						"200": docs.JSONResponse("Lembrete", docs.Ref("Lembrete")),
						"404": docs.ErrorResponse("Lembrete não encontrado"),
					},
				},
			},
			{
				Method: http.MethodPost, Path: "/reminders", Handler: h.Create, Secured: true,
				Doc: docs.Operation{
					Summary:     "Criar lembrete",
					RequestBody: docs.JSONBody(input("12:00", "description", "priority", "user_id", "time"), true),
					Responses: map[string]docs.Response{
						"201": docs.JSONResponse("Lembrete criado", docs.Ref("Lembrete")),
						"400": docs.ErrorResponse("Requisição inválida"),
					},
				},
			},
			{
				Method: http.MethodPatch, Path: "/reminders/:id", Handler: h.Update, Secured: true,
				Doc: docs.Operation{
					Summary:     "Atualizar lembrete (parcial)",
					Parameters:  []docs.Parameter{idParam("ID do lembrete")},
					RequestBody: docs.JSONBody(input("08:30"), true),
					Responses: map[string]docs.Response{
						"200": docs.JSONResponse("Lembrete atualizado", docs.Ref("Lembrete")),
						"400": docs.ErrorResponse("Requisição inválida"),
						"404": docs.ErrorResponse("Lembrete não encontrado"),
					},
				},
			},
			{
				Method: http.MethodDelete, Path: "/reminders/:id", Handler: h.Delete, Secured: true,
				Doc: docs.Operation{
					Summary:    "Excluir lembrete",
					Parameters: []docs.Parameter{idParam("ID do lembrete")},
					Responses: map[string]docs.Response{
						"204": {Description: "Excluído"},
						"404": docs.ErrorResponse("Lembrete não encontrado"),
					},
				},
			},
		},
	}
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type teapot struct{}

func (teapot) Error() string   { return "teapot" }
func (teapot) StatusCode() int { return http.StatusTeapot }

func TestStatusAndMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "invalid", err: Invalid("nome é obrigatório"), status: http.StatusBadRequest, message: "nome é obrigatório"},
		{name: "not found", err: NotFound("Usuário não encontrado"), status: http.StatusNotFound, message: "Usuário não encontrado"},
		{name: "unauthorized", err: Unauthorized("Credenciais inválidas"), status: http.StatusUnauthorized, message: "Credenciais inválidas"},
		{name: "forbidden", err: Forbidden("nope"), status: http.StatusForbidden, message: "nope"},
		{name: "conflict", err: Conflict("email já cadastrado"), status: http.StatusConflict, message: "email já cadastrado"},
		{name: "bare sentinel", err: ErrNotFound, status: http.StatusNotFound, message: DefaultMessage},
		{name: "carried status", err: fmt.Errorf("wrapped: %w", teapot{}), status: http.StatusTeapot, message: DefaultMessage},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, message: DefaultMessage},
		{name: "internal with cause", err: Internal("Falha ao autenticar.", errors.New("db down")), status: http.StatusInternalServerError, message: "Falha ao autenticar."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.status, Status(tt.err))
			require.Equal(t, tt.message, Message(tt.err))
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("db down")
	err := Internal("Falha ao autenticar.", cause)
	require.True(t, errors.Is(err, cause))
	require.True(t, errors.Is(err, ErrInternal))
	require.Contains(t, err.Error(), "db down")
}

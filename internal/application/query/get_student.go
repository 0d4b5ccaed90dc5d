package query

import (
	"context"
	"fmt"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT QUERY
// Находит студента по номеру.
// ══════════════════════════════════════════════════════════════════════════════

// GetStudentQuery содержит номер искомого студента.
type GetStudentQuery struct {
	RollNumber student.RollNumber
}

// GetStudentHandler обрабатывает запрос студента.
type GetStudentHandler struct {
	roster *roster.Roster
}

// NewGetStudentHandler создаёт новый обработчик.
func NewGetStudentHandler(r *roster.Roster) *GetStudentHandler {
	return &GetStudentHandler{roster: r}
}

// Handle возвращает студента или shared.ErrStudentNotFound.
func (h *GetStudentHandler) Handle(ctx context.Context, q GetStudentQuery) (*StudentDTO, error) {
	s, err := h.roster.Get(q.RollNumber)
	if err != nil {
		return nil, fmt.Errorf("get_student: %w", err)
	}
	dto := toStudentDTO(s)
	return &dto, nil
}

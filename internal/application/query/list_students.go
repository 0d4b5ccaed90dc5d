package query

import (
	"context"

	"github.com/alem-hub/gradebook/internal/domain/roster"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST STUDENTS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListStudentsResult содержит всех студентов в порядке добавления.
type ListStudentsResult struct {
	Students []StudentDTO `json:"students"`
}

// Empty возвращает true, если журнал пуст.
func (r *ListStudentsResult) Empty() bool {
	return len(r.Students) == 0
}

// ListStudentsHandler обрабатывает запрос списка.
type ListStudentsHandler struct {
	roster *roster.Roster
}

// NewListStudentsHandler создаёт новый обработчик.
func NewListStudentsHandler(r *roster.Roster) *ListStudentsHandler {
	return &ListStudentsHandler{roster: r}
}

// Handle перечисляет студентов. Пустой журнал - не ошибка.
func (h *ListStudentsHandler) Handle(ctx context.Context) (*ListStudentsResult, error) {
	list := h.roster.List()
	result := &ListStudentsResult{Students: make([]StudentDTO, 0, len(list))}
	for _, s := range list {
		result.Students = append(result.Students, toStudentDTO(s))
	}
	return result, nil
}

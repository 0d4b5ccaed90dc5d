package query

import (
	"context"
	"fmt"

	"github.com/alem-hub/gradebook/internal/domain/roster"
)

// ══════════════════════════════════════════════════════════════════════════════
// TOP PERFORMERS QUERY
// Рейтинг студентов по среднему баллу.
// Порядок: средний балл по убыванию, при равенстве - номер по возрастанию.
// ══════════════════════════════════════════════════════════════════════════════

// TopPerformersQuery содержит параметры выборки.
type TopPerformersQuery struct {
	// K - сколько лучших студентов вернуть. Должно быть > 0.
	K int
}

// TopPerformersResult содержит результат выборки.
type TopPerformersResult struct {
	// Requested - запрошенное K.
	Requested int `json:"requested"`

	// Available - сколько студентов в журнале.
	Available int `json:"available"`

	// Truncated - K больше числа студентов, показаны все.
	Truncated bool `json:"truncated"`

	// Entries - выбранные студенты, Rank начиная с 1.
	Entries []RankedStudentDTO `json:"entries"`
}

// TopPerformersHandler обрабатывает запросы рейтинга.
type TopPerformersHandler struct {
	roster *roster.Roster
}

// NewTopPerformersHandler создаёт новый обработчик.
func NewTopPerformersHandler(r *roster.Roster) *TopPerformersHandler {
	return &TopPerformersHandler{roster: r}
}

// TopPerformer возвращает лучшего студента (Rank 1).
// Возвращает shared.ErrEmptyRoster для пустого журнала.
func (h *TopPerformersHandler) TopPerformer(ctx context.Context) (*RankedStudentDTO, error) {
	top, err := h.roster.TopPerformer()
	if err != nil {
		return nil, fmt.Errorf("top_performer: %w", err)
	}
	dto := toRankedDTO(*top)
	return &dto, nil
}

// Handle возвращает min(K, N) лучших студентов.
// Ошибки: shared.ErrEmptyRoster (проверяется первой), shared.ErrInvalidTopK.
func (h *TopPerformersHandler) Handle(ctx context.Context, q TopPerformersQuery) (*TopPerformersResult, error) {
	ranking, err := h.roster.TopK(q.K)
	if err != nil {
		return nil, fmt.Errorf("top_performers: %w", err)
	}

	result := &TopPerformersResult{
		Requested: ranking.Requested,
		Available: ranking.Available,
		Truncated: ranking.Truncated(),
		Entries:   make([]RankedStudentDTO, 0, ranking.Shown()),
	}
	for _, e := range ranking.Entries {
		result.Entries = append(result.Entries, toRankedDTO(e))
	}
	return result, nil
}

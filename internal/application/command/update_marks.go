package command

import (
	"context"
	"fmt"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE MARKS COMMAND
// Sets or overwrites the marks of one subject for an existing student.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateMarksCommand contains the data to update marks.
type UpdateMarksCommand struct {
	RollNumber student.RollNumber
	Subject    string
	Marks      student.Marks
}

// UpdateMarksResult contains the result of updating marks.
type UpdateMarksResult struct {
	RollNumber student.RollNumber
	Name       string
	Subject    string
	Marks      student.Marks
	Average    float64
}

// UpdateMarksHandler handles the UpdateMarksCommand.
type UpdateMarksHandler struct {
	roster *roster.Roster
}

// NewUpdateMarksHandler creates a new UpdateMarksHandler.
func NewUpdateMarksHandler(r *roster.Roster) *UpdateMarksHandler {
	return &UpdateMarksHandler{roster: r}
}

// Handle executes the update marks command.
// Returns shared.ErrStudentNotFound or shared.ErrMarksOutOfRange; nothing changes on error.
func (h *UpdateMarksHandler) Handle(ctx context.Context, cmd UpdateMarksCommand) (*UpdateMarksResult, error) {
	log := logger.FromContext(ctx)
	s, err := h.roster.UpdateMarks(cmd.RollNumber, cmd.Subject, cmd.Marks)
	if err != nil {
		log.Warn("marks not updated",
			logger.RollNumber(int(cmd.RollNumber)),
			logger.Subject(cmd.Subject),
			logger.MarksValue(int(cmd.Marks)),
			logger.Err(err),
		)
		return nil, fmt.Errorf("update_marks: %w", err)
	}

	log.Info("marks updated",
		logger.RollNumber(int(cmd.RollNumber)),
		logger.Subject(cmd.Subject),
		logger.MarksValue(int(cmd.Marks)),
		logger.Float64("average", s.Average()),
	)

	return &UpdateMarksResult{
		RollNumber: s.RollNumber,
		Name:       s.Name,
		Subject:    cmd.Subject,
		Marks:      cmd.Marks,
		Average:    s.Average(),
	}, nil
}

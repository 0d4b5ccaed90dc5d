package command

import (
	"context"
	"fmt"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// REMOVE STUDENT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// RemoveStudentCommand identifies the student to delete.
type RemoveStudentCommand struct {
	RollNumber student.RollNumber
}

// RemoveStudentResult contains the result of a removal.
type RemoveStudentResult struct {
	RollNumber student.RollNumber
	RosterSize int
}

// RemoveStudentHandler handles the RemoveStudentCommand.
type RemoveStudentHandler struct {
	roster *roster.Roster
}

// NewRemoveStudentHandler creates a new RemoveStudentHandler.
func NewRemoveStudentHandler(r *roster.Roster) *RemoveStudentHandler {
	return &RemoveStudentHandler{roster: r}
}

// Handle deletes the student irrevocably.
// Returns shared.ErrStudentNotFound when there is no such roll number.
func (h *RemoveStudentHandler) Handle(ctx context.Context, cmd RemoveStudentCommand) (*RemoveStudentResult, error) {
	log := logger.FromContext(ctx)
	if err := h.roster.Remove(cmd.RollNumber); err != nil {
		return nil, fmt.Errorf("remove_student: %w", err)
	}

	log.Info("student removed", logger.RollNumber(int(cmd.RollNumber)))

	return &RemoveStudentResult{
		RollNumber: cmd.RollNumber,
		RosterSize: h.roster.Len(),
	}, nil
}

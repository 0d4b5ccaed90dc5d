// Package command contains write operations (CQRS - Commands) over the roster.
package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD STUDENT COMMAND
// Inserts a fully built student record into the roster.
// Marks are attached to the student before the command runs, one subject at a time.
// ══════════════════════════════════════════════════════════════════════════════

// AddStudentCommand contains the student to insert.
type AddStudentCommand struct {
	// Student is the new record, marks already attached.
	Student *student.Student
}

// Validate validates the command.
func (c AddStudentCommand) Validate() error {
	if c.Student == nil {
		return errors.New("add_student: student is required")
	}
	return nil
}

// AddStudentResult contains the result of adding a student.
type AddStudentResult struct {
	RollNumber  student.RollNumber
	Name        string
	RosterSize  int
	SubjectsSet int
}

// AddStudentHandler handles the AddStudentCommand.
type AddStudentHandler struct {
	roster *roster.Roster
}

// NewAddStudentHandler creates a new AddStudentHandler.
func NewAddStudentHandler(r *roster.Roster) *AddStudentHandler {
	return &AddStudentHandler{roster: r}
}

// Handle executes the add student command.
// Returns shared.ErrStudentAlreadyExists when the roll number is taken.
func (h *AddStudentHandler) Handle(ctx context.Context, cmd AddStudentCommand) (*AddStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	s := cmd.Student
	if err := h.roster.Add(s); err != nil {
		log.Warn("student not added", logger.RollNumber(int(s.RollNumber)), logger.Err(err))
		return nil, fmt.Errorf("add_student: %w", err)
	}

	log.Info("student added",
		logger.RollNumber(int(s.RollNumber)),
		logger.Int("subjects", len(s.Grades)),
	)

	return &AddStudentResult{
		RollNumber:  s.RollNumber,
		Name:        s.Name,
		RosterSize:  h.roster.Len(),
		SubjectsSet: len(s.Grades),
	}, nil
}

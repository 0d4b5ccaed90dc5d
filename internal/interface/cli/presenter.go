package cli

import (
	"fmt"
	"io"

	"github.com/alem-hub/gradebook/internal/application/query"
)

// ══════════════════════════════════════════════════════════════════════════════
// MESSAGES
// ══════════════════════════════════════════════════════════════════════════════

const (
	menuHeader = "\n--- Gradebook Menu ---"

	promptChoice     = "Enter your choice (1-9): "
	promptName       = "Enter student name: "
	promptRoll       = "Enter student roll number: "
	promptSubject    = "Enter subject (or 'done' to finish): "
	promptMarksFor   = "Enter marks for %s: "
	promptRemoveRoll = "Enter roll number to remove: "
	promptViewRoll   = "Enter roll number to view details: "
	promptUpdateRoll = "Enter roll number: "
	promptUpdateSubj = "Enter subject: "
	promptNewMarks   = "Enter new marks: "
	promptK          = "Enter value of K: "

	msgNotANumber      = "Invalid input. Please enter a number."
	msgInvalidChoice   = "Invalid choice. Please try again."
	msgExiting         = "Exiting..."
	msgInvalidRoll     = "Invalid roll number. Must be an integer."
	msgInvalidMarks    = "Invalid marks. Must be an integer."
	msgMarksRange      = "Marks must be between 0 and 100."
	msgDuplicate       = "Student with roll number %d already exists."
	msgRemoved         = "Student removed successfully."
	msgNotFound        = "No student found with roll number %d."
	msgUpdateInvalid   = "Invalid input. Roll number and marks must be integers."
	msgUpdated         = "Marks for %s updated to %d for student %s."
	msgInvalidK        = "Invalid input. K must be an integer."
	msgPositiveK       = "Please enter a positive number for k."
	msgEmptyGradebook  = "No students in gradebook."
	msgTruncated       = "Only %d students available. Showing all of them instead."
	msgNoStudents      = "There are no students."
	msgOverwrote       = "Note: %s was changed outside the gradebook since it was last read; it has been overwritten."
	msgSaved           = "Gradebook saved successfully."
	msgLoaded          = "Gradebook loaded successfully."
	msgFileNotFound    = "File not found. Starting with an empty gradebook."
	msgInvalidFile     = "Invalid file format. Could not load gradebook."
	msgError           = "Error: %v"
	headerTopPerformer = "\n--- Top Performer ---"
	headerTopK         = "\n--- Top %d Performers ---"
	headerAllStudents  = "\n--- All Students ---"
)

// menuItems are listed in menu number order.
var menuItems = []string{
	"Add student",
	"Remove student",
	"View student details",
	"List all students",
	"Save details",
	"update marks",
	"Top performer",
	"Top K performers",
	"Exit",
}

// ══════════════════════════════════════════════════════════════════════════════
// PRESENTER
// Formats query results and outcomes as terminal text.
// ══════════════════════════════════════════════════════════════════════════════

// Presenter writes user-facing text to the terminal.
type Presenter struct {
	out io.Writer
}

// NewPresenter creates a presenter over out.
func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// Line prints a formatted line.
func (p *Presenter) Line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Prompt prints text without a trailing newline.
func (p *Presenter) Prompt(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Menu prints the numbered menu.
func (p *Presenter) Menu() {
	p.Line(menuHeader)
	for i, item := range menuItems {
		p.Line("%d. %s", i+1, item)
	}
}

// Error prints an unexpected failure.
func (p *Presenter) Error(err error) {
	p.Line(msgError, err)
}

// StudentDetails prints the multi-line student description preceded by a blank line.
func (p *Presenter) StudentDetails(s query.StudentDTO) {
	p.Line("\n%s", s.Details)
}

// StudentList prints one summary line per student.
func (p *Presenter) StudentList(res *query.ListStudentsResult) {
	if res.Empty() {
		p.Line(msgNoStudents)
		return
	}
	p.Line(headerAllStudents)
	for _, s := range res.Students {
		p.Line("Name: %s, Roll Number: %d", s.Name, s.RollNumber)
	}
}

// TopPerformer prints the best student.
func (p *Presenter) TopPerformer(top *query.RankedStudentDTO) {
	p.Line(headerTopPerformer)
	p.StudentDetails(top.Student)
}

// TopPerformers prints a ranking, warning first when K exceeds the roster size.
func (p *Presenter) TopPerformers(res *query.TopPerformersResult) {
	if res.Truncated {
		p.Line(msgTruncated, res.Available)
	}
	p.Line(headerTopK, len(res.Entries))
	for _, e := range res.Entries {
		p.Line("\nRank %d:", e.Rank)
		p.StudentDetails(e.Student)
	}
}

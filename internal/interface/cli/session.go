// Package cli implements the interactive numbered-menu terminal interface.
package cli

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/alem-hub/gradebook/internal/application/command"
	"github.com/alem-hub/gradebook/internal/application/query"
	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// Handlers groups the use cases the menu dispatches to.
type Handlers struct {
	AddStudent    *command.AddStudentHandler
	RemoveStudent *command.RemoveStudentHandler
	UpdateMarks   *command.UpdateMarksHandler
	Persistence   *command.PersistenceHandler
	GetStudent    *query.GetStudentHandler
	ListStudents  *query.ListStudentsHandler
	TopPerformers *query.TopPerformersHandler
}

// NewHandlers wires every use case over one roster and store.
func NewHandlers(r *roster.Roster, store roster.Store, storeTimeout time.Duration) Handlers {
	return Handlers{
		AddStudent:    command.NewAddStudentHandler(r),
		RemoveStudent: command.NewRemoveStudentHandler(r),
		UpdateMarks:   command.NewUpdateMarksHandler(r),
		Persistence:   command.NewPersistenceHandler(r, store, storeTimeout),
		GetStudent:    query.NewGetStudentHandler(r),
		ListStudents:  query.NewListStudentsHandler(r),
		TopPerformers: query.NewTopPerformersHandler(r),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// SESSION
// Reads menu choices line by line and routes them to actions.
// ══════════════════════════════════════════════════════════════════════════════

// errExit stops the menu loop.
var errExit = errors.New("exit")

// action handles one menu choice. Returning io.EOF or errExit ends the session.
type action func(ctx context.Context) error

// Config contains session settings.
type Config struct {
	// Logger for structured logging. Nil discards logs.
	Logger *logger.Logger

	// SkipInitialLoad disables loading the stored roster before the first menu.
	SkipInitialLoad bool
}

// Session is one interactive run over an input and an output stream.
type Session struct {
	handlers Handlers
	in       *lineReader
	view     *Presenter
	log      *logger.Logger
	config   Config
	actions  map[int]action
}

// NewSession creates a session.
func NewSession(in io.Reader, out io.Writer, handlers Handlers, cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	s := &Session{
		handlers: handlers,
		in:       newLineReader(in),
		view:     NewPresenter(out),
		log:      cfg.Logger.With(logger.Component("cli")),
		config:   cfg,
	}

	s.actions = map[int]action{
		1: s.addStudent,
		2: s.removeStudent,
		3: s.viewStudent,
		4: s.listStudents,
		5: s.save,
		6: s.updateMarks,
		7: s.topPerformer,
		8: s.topPerformers,
		9: s.exit,
	}
	return s
}

// Run loads the stored roster, then serves the menu until Exit or end of input.
// Only unexpected read errors are returned.
func (s *Session) Run(ctx context.Context) error {
	ctx = logger.WithContext(ctx, s.log)

	if !s.config.SkipInitialLoad {
		s.load(ctx)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.view.Menu()
		s.view.Prompt(promptChoice)

		line, err := s.in.readLine()
		if err != nil {
			return s.finish(err)
		}

		choice, err := parseInt(line)
		if err != nil {
			s.view.Line(msgNotANumber)
			continue
		}

		act, ok := s.actions[choice]
		if !ok {
			s.view.Line(msgInvalidChoice)
			continue
		}

		s.log.Debug("menu choice", logger.Int("choice", choice))
		if err := act(ctx); err != nil {
			return s.finish(err)
		}
	}
}

// finish converts a loop-ending error into Run's result.
func (s *Session) finish(err error) error {
	switch {
	case errors.Is(err, errExit):
		s.log.Info("session finished")
		return nil
	case errors.Is(err, io.EOF):
		s.view.Line("")
		s.view.Line(msgExiting)
		s.log.Info("input closed, session finished")
		return nil
	default:
		s.log.Error("session aborted", logger.Err(err))
		return err
	}
}

// ask prints a prompt and reads the answer.
func (s *Session) ask(format string, args ...any) (string, error) {
	s.view.Prompt(format, args...)
	return s.in.readLine()
}

// askInt prints a prompt and parses the answer as an integer.
// The second error is non-nil only for read failures.
func (s *Session) askInt(format string, args ...any) (int, bool, error) {
	line, err := s.ask(format, args...)
	if err != nil {
		return 0, false, err
	}
	n, err := parseInt(line)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ACTIONS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Session) addStudent(ctx context.Context) error {
	name, err := s.ask(promptName)
	if err != nil {
		return err
	}

	roll, ok, err := s.askInt(promptRoll)
	if err != nil {
		return err
	}
	if !ok {
		s.view.Line(msgInvalidRoll)
		return nil
	}

	st := student.NewStudent(name, student.RollNumber(roll))
	for {
		subject, err := s.ask(promptSubject)
		if err != nil {
			return err
		}
		if isDone(subject) {
			break
		}

		marks, ok, err := s.askInt(promptMarksFor, subject)
		if err != nil {
			return err
		}
		if !ok {
			s.view.Line(msgInvalidMarks)
			continue
		}
		if err := st.AddMarks(subject, student.Marks(marks)); err != nil {
			s.view.Line(msgMarksRange)
		}
	}

	_, err = s.handlers.AddStudent.Handle(ctx, command.AddStudentCommand{Student: st})
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrStudentAlreadyExists):
		s.view.Line(msgDuplicate, roll)
	default:
		s.view.Error(err)
	}
	return nil
}

func (s *Session) removeStudent(ctx context.Context) error {
	roll, ok, err := s.askInt(promptRemoveRoll)
	if err != nil {
		return err
	}
	if !ok {
		s.view.Line(msgInvalidRoll)
		return nil
	}

	_, err = s.handlers.RemoveStudent.Handle(ctx, command.RemoveStudentCommand{RollNumber: student.RollNumber(roll)})
	switch {
	case err == nil:
		s.view.Line(msgRemoved)
	case errors.Is(err, shared.ErrStudentNotFound):
		s.view.Line(msgNotFound, roll)
	default:
		s.view.Error(err)
	}
	return nil
}

func (s *Session) viewStudent(ctx context.Context) error {
	roll, ok, err := s.askInt(promptViewRoll)
	if err != nil {
		return err
	}
	if !ok {
		s.view.Line(msgInvalidRoll)
		return nil
	}

	dto, err := s.handlers.GetStudent.Handle(ctx, query.GetStudentQuery{RollNumber: student.RollNumber(roll)})
	switch {
	case err == nil:
		s.view.StudentDetails(*dto)
	case errors.Is(err, shared.ErrStudentNotFound):
		s.view.Line(msgNotFound, roll)
	default:
		s.view.Error(err)
	}
	return nil
}

func (s *Session) listStudents(ctx context.Context) error {
	res, err := s.handlers.ListStudents.Handle(ctx)
	if err != nil {
		s.view.Error(err)
		return nil
	}
	s.view.StudentList(res)
	return nil
}

func (s *Session) save(ctx context.Context) error {
	res, err := s.handlers.Persistence.Save(ctx)
	if err != nil {
		s.view.Error(err)
		return nil
	}
	if res.ExternallyModified {
		s.view.Line(msgOverwrote, res.Location)
	}
	s.view.Line(msgSaved)
	return nil
}

// load reports every outcome; the session continues regardless.
func (s *Session) load(ctx context.Context) {
	res, err := s.handlers.Persistence.Load(ctx)
	if err == nil {
		s.view.Line(msgLoaded)
		return
	}

	switch {
	case res != nil && res.Outcome == command.LoadMissing:
		s.view.Line(msgFileNotFound)
	case res != nil && res.Outcome == command.LoadCorrupt:
		s.view.Line(msgInvalidFile)
	default:
		s.view.Error(err)
	}
}

func (s *Session) updateMarks(ctx context.Context) error {
	roll, ok, err := s.askInt(promptUpdateRoll)
	if err != nil {
		return err
	}
	if !ok {
		s.view.Line(msgUpdateInvalid)
		return nil
	}

	subject, err := s.ask(promptUpdateSubj)
	if err != nil {
		return err
	}

	marks, ok, err := s.askInt(promptNewMarks)
	if err != nil {
		return err
	}
	if !ok {
		s.view.Line(msgUpdateInvalid)
		return nil
	}

	res, err := s.handlers.UpdateMarks.Handle(ctx, command.UpdateMarksCommand{
		RollNumber: student.RollNumber(roll),
		Subject:    subject,
		Marks:      student.Marks(marks),
	})
	switch {
	case err == nil:
		s.view.Line(msgUpdated, res.Subject, res.Marks, res.Name)
	case errors.Is(err, shared.ErrStudentNotFound):
		s.view.Line(msgNotFound, roll)
	case errors.Is(err, shared.ErrMarksOutOfRange):
		s.view.Line(msgMarksRange)
	default:
		s.view.Error(err)
	}
	return nil
}

func (s *Session) topPerformer(ctx context.Context) error {
	top, err := s.handlers.TopPerformers.TopPerformer(ctx)
	switch {
	case err == nil:
		s.view.TopPerformer(top)
	case errors.Is(err, shared.ErrEmptyRoster):
		s.view.Line(msgEmptyGradebook)
	default:
		s.view.Error(err)
	}
	return nil
}

func (s *Session) topPerformers(ctx context.Context) error {
	k, ok, err := s.askInt(promptK)
	if err != nil {
		return err
	}
	if !ok {
		s.view.Line(msgInvalidK)
		return nil
	}

	res, err := s.handlers.TopPerformers.Handle(ctx, query.TopPerformersQuery{K: k})
	switch {
	case err == nil:
		s.view.TopPerformers(res)
	case errors.Is(err, shared.ErrEmptyRoster):
		s.view.Line(msgEmptyGradebook)
	case errors.Is(err, shared.ErrInvalidTopK):
		s.view.Line(msgPositiveK)
	default:
		s.view.Error(err)
	}
	return nil
}

func (s *Session) exit(context.Context) error {
	s.view.Line(msgExiting)
	return errExit
}

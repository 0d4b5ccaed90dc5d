// Package xlsx writes the roster standings as an Excel workbook.
//
// Layout of the single sheet:
//
//	Rank | Roll Number | Name | <subject>... | Average
//
// One row per student in ranking order. Subject columns are the sorted union
// of every student's subjects; a student without marks in a subject gets a
// blank cell.
package xlsx

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// DefaultSheet is used when no sheet name is configured.
const DefaultSheet = "Roster"

// Result describes a finished export.
type Result struct {
	Path     string
	Sheet    string
	Students int
	Subjects int
}

// Exporter renders roster standings into a workbook.
type Exporter struct {
	sheet string
	log   *logger.Logger
}

// NewExporter creates an exporter writing to the named sheet.
func NewExporter(sheet string, log *logger.Logger) *Exporter {
	if sheet == "" {
		sheet = DefaultSheet
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Exporter{
		sheet: sheet,
		log:   log.With(logger.Component("xlsx")),
	}
}

// WriteFile exports the roster to path, replacing any existing file.
func (e *Exporter) WriteFile(path string, r *roster.Roster) (*Result, error) {
	f, res, err := e.build(r)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			e.log.Warn("failed to close workbook", logger.Err(err))
		}
	}()

	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("xlsx: failed to save %s: %w", path, err)
	}

	res.Path = path
	e.log.Info("roster exported", logger.Path(path), logger.Count(res.Students), logger.Int("subjects", res.Subjects))
	return res, nil
}

// Write exports the roster to w.
func (e *Exporter) Write(w io.Writer, r *roster.Roster) (*Result, error) {
	f, res, err := e.build(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return nil, fmt.Errorf("xlsx: failed to write workbook: %w", err)
	}
	return res, nil
}

func (e *Exporter) build(r *roster.Roster) (*excelize.File, *Result, error) {
	standings := r.Standings()
	subjects := subjectUnion(standings)

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), e.sheet); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("xlsx: failed to name sheet: %w", err)
	}

	header := make([]any, 0, len(subjects)+4)
	header = append(header, "Rank", "Roll Number", "Name")
	for _, subject := range subjects {
		header = append(header, subject)
	}
	header = append(header, "Average")

	if err := f.SetSheetRow(e.sheet, "A1", &header); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("xlsx: failed to write header: %w", err)
	}
	if err := e.styleHeader(f); err != nil {
		f.Close()
		return nil, nil, err
	}

	for i, entry := range standings {
		row := i + 2
		s := entry.Student

		cells := map[int]any{1: int(entry.Rank), 2: int(s.RollNumber), 3: s.Name}
		cells[len(subjects)+4] = entry.Average
		for j, subject := range subjects {
			if marks, ok := s.Grades[subject]; ok {
				cells[j+4] = int(marks)
			}
		}

		for col, value := range cells {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				f.Close()
				return nil, nil, fmt.Errorf("xlsx: %w", err)
			}
			if err := f.SetCellValue(e.sheet, cell, value); err != nil {
				f.Close()
				return nil, nil, fmt.Errorf("xlsx: failed to set %s: %w", cell, err)
			}
		}
	}

	return f, &Result{Sheet: e.sheet, Students: len(standings), Subjects: len(subjects)}, nil
}

func (e *Exporter) styleHeader(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(e.sheet, 1, 1, style); err != nil {
		return fmt.Errorf("xlsx: failed to style header: %w", err)
	}
	return nil
}

// subjectUnion returns every subject taken by any student, sorted.
func subjectUnion(standings []roster.RankedStudent) []string {
	seen := make(map[string]struct{})
	for _, e := range standings {
		for subject := range e.Student.Grades {
			seen[subject] = struct{}{}
		}
	}
	subjects := make([]string, 0, len(seen))
	for subject := range seen {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects
}

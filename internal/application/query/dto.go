// Package query contains read operations following CQRS pattern.
// Queries never modify the roster - they only read and return data.
package query

import (
	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// StudentDTO - DTO студента для представления.
type StudentDTO struct {
	// Name - имя студента.
	Name string `json:"name"`

	// RollNumber - уникальный номер.
	RollNumber int `json:"roll_number"`

	// Grades - оценки по предметам.
	Grades map[string]int `json:"grades"`

	// Subjects - предметы в алфавитном порядке.
	Subjects []string `json:"subjects"`

	// Average - средний балл (0.0 без оценок).
	Average float64 `json:"average"`

	// Details - многострочное описание студента.
	Details string `json:"details"`
}

// RankedStudentDTO - студент с позицией в рейтинге.
type RankedStudentDTO struct {
	Rank    int        `json:"rank"`
	Student StudentDTO `json:"student"`
}

// toStudentDTO копирует студента в DTO.
func toStudentDTO(s *student.Student) StudentDTO {
	grades := make(map[string]int, len(s.Grades))
	for subject, marks := range s.Grades {
		grades[subject] = int(marks)
	}
	return StudentDTO{
		Name:       s.Name,
		RollNumber: int(s.RollNumber),
		Grades:     grades,
		Subjects:   s.Subjects(),
		Average:    s.Average(),
		Details:    s.Describe(),
	}
}

func toRankedDTO(e roster.RankedStudent) RankedStudentDTO {
	return RankedStudentDTO{
		Rank:    int(e.Rank),
		Student: toStudentDTO(e.Student),
	}
}

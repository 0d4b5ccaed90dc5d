// Package student содержит доменную модель студента журнала успеваемости.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package student

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alem-hub/gradebook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// RollNumber представляет номер студента в журнале.
// Уникальность обеспечивает журнал (roster), а не сам студент.
type RollNumber int

// String возвращает строковое представление номера.
func (r RollNumber) String() string {
	return strconv.Itoa(int(r))
}

// Marks представляет оценку по одному предмету.
type Marks int

const (
	// MinMarks - минимально допустимая оценка.
	MinMarks Marks = 0
	// MaxMarks - максимально допустимая оценка.
	MaxMarks Marks = 100
)

// IsValid проверяет, что оценка в диапазоне [0, 100].
func (m Marks) IsValid() bool {
	return m >= MinMarks && m <= MaxMarks
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student - запись о студенте: имя, номер и оценки по предметам.
type Student struct {
	// Name - имя студента, уникальность не требуется.
	Name string

	// RollNumber - номер студента в журнале.
	RollNumber RollNumber

	// Grades - оценки по предметам (предмет -> оценка).
	Grades map[string]Marks
}

// NewStudent создаёт студента без оценок.
func NewStudent(name string, roll RollNumber) *Student {
	return &Student{
		Name:       name,
		RollNumber: roll,
		Grades:     make(map[string]Marks),
	}
}

// AddMarks выставляет оценку по предмету.
// Повторный вызов для того же предмета перезаписывает оценку.
// Возвращает ErrMarksOutOfRange, если оценка вне [0, 100]; состояние не меняется.
func (s *Student) AddMarks(subject string, marks Marks) error {
	if !marks.IsValid() {
		return shared.ErrMarksOutOfRange
	}
	if s.Grades == nil {
		s.Grades = make(map[string]Marks)
	}
	s.Grades[subject] = marks
	return nil
}

// Average возвращает среднее арифметическое оценок ("GPA").
// Для студента без оценок возвращает 0.0.
func (s *Student) Average() float64 {
	if len(s.Grades) == 0 {
		return 0.0
	}
	// Загруженные оценки не проверяются, поэтому суммируем в float64.
	var total float64
	for _, m := range s.Grades {
		total += float64(m)
	}
	return total / float64(len(s.Grades))
}

// Subjects возвращает предметы в алфавитном порядке.
func (s *Student) Subjects() []string {
	subjects := make([]string, 0, len(s.Grades))
	for subject := range s.Grades {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects
}

// Describe возвращает многострочное описание студента:
// заголовок, список предметов с оценками и строку со средним баллом.
func (s *Student) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nRoll Number: %d\n", s.Name, s.RollNumber)
	b.WriteString("Subjects and Marks:\n")
	// Предметы по алфавиту, а не в порядке ввода: вывод детерминирован.
	for _, subject := range s.Subjects() {
		fmt.Fprintf(&b, " %s: %d\n", subject, s.Grades[subject])
	}
	b.WriteString("GPA: ")
	b.WriteString(FormatAverage(s.Average()))
	return b.String()
}

// FormatAverage форматирует средний балл в кратчайшей точной записи,
// всегда с дробной частью: 85.0, 96.5, 83.33333333333333.
func FormatAverage(avg float64) string {
	str := strconv.FormatFloat(avg, 'f', -1, 64)
	if !strings.ContainsAny(str, ".") {
		str += ".0"
	}
	return str
}

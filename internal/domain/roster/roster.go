// Package roster содержит доменную модель журнала успеваемости (Gradebook):
// коллекцию студентов с ключом по номеру и операции над ней.
package roster

import (
	"sort"

	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER
// ══════════════════════════════════════════════════════════════════════════════

// Roster - журнал: студенты по номеру плюс порядок добавления для перечисления.
// Roster не потокобезопасен: им владеет одна интерактивная сессия.
type Roster struct {
	students map[student.RollNumber]*student.Student
	order    []student.RollNumber
}

// New создаёт пустой журнал.
func New() *Roster {
	return &Roster{
		students: make(map[student.RollNumber]*student.Student),
	}
}

// Len возвращает количество студентов.
func (r *Roster) Len() int {
	return len(r.order)
}

// Contains проверяет, есть ли студент с таким номером.
func (r *Roster) Contains(roll student.RollNumber) bool {
	_, ok := r.students[roll]
	return ok
}

// Add добавляет студента.
// Возвращает ErrStudentAlreadyExists, если номер уже занят; журнал не меняется.
func (r *Roster) Add(s *student.Student) error {
	if r.Contains(s.RollNumber) {
		return shared.ErrStudentAlreadyExists
	}
	r.students[s.RollNumber] = s
	r.order = append(r.order, s.RollNumber)
	return nil
}

// Remove безвозвратно удаляет студента.
// Возвращает ErrStudentNotFound, если студента нет.
func (r *Roster) Remove(roll student.RollNumber) error {
	if !r.Contains(roll) {
		return shared.ErrStudentNotFound
	}
	delete(r.students, roll)
	for i, n := range r.order {
		if n == roll {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get возвращает студента по номеру.
func (r *Roster) Get(roll student.RollNumber) (*student.Student, error) {
	s, ok := r.students[roll]
	if !ok {
		return nil, shared.ErrStudentNotFound
	}
	return s, nil
}

// UpdateMarks выставляет или перезаписывает оценку студента по предмету.
// Сначала проверяется наличие студента, затем диапазон оценки.
func (r *Roster) UpdateMarks(roll student.RollNumber, subject string, marks student.Marks) (*student.Student, error) {
	s, err := r.Get(roll)
	if err != nil {
		return nil, err
	}
	if err := s.AddMarks(subject, marks); err != nil {
		return nil, err
	}
	return s, nil
}

// List возвращает всех студентов в порядке добавления.
func (r *Roster) List() []*student.Student {
	out := make([]*student.Student, 0, len(r.order))
	for _, roll := range r.order {
		out = append(out, r.students[roll])
	}
	return out
}

// ══════════════════════════════════════════════════════════════════════════════
// SNAPSHOT
// ══════════════════════════════════════════════════════════════════════════════

// Records возвращает структурные записи всех студентов в порядке добавления.
func (r *Roster) Records() []student.Record {
	records := make([]student.Record, 0, len(r.order))
	for _, s := range r.List() {
		records = append(records, s.ToRecord())
	}
	return records
}

// Replace полностью заменяет содержимое журнала записями (без слияния).
// При повторяющемся номере побеждает последняя запись, позиция остаётся от первой.
func (r *Roster) Replace(records []student.Record) {
	r.students = make(map[student.RollNumber]*student.Student, len(records))
	r.order = r.order[:0]
	for _, rec := range records {
		s := student.FromRecord(rec)
		if !r.Contains(s.RollNumber) {
			r.order = append(r.order, s.RollNumber)
		}
		r.students[s.RollNumber] = s
	}
}

// Reset очищает журнал.
func (r *Roster) Reset() {
	r.Replace(nil)
}

// ══════════════════════════════════════════════════════════════════════════════
// RANKING
// ══════════════════════════════════════════════════════════════════════════════

// Rank - позиция студента в рейтинге, начиная с 1.
type Rank int

// RankedStudent - студент вместе с его позицией и средним баллом.
type RankedStudent struct {
	Rank    Rank
	Student *student.Student
	Average float64
}

// Ranking - результат выборки лучших студентов.
type Ranking struct {
	// Requested - запрошенное K.
	Requested int

	// Available - сколько студентов было в журнале.
	Available int

	// Entries - выбранные студенты, по убыванию среднего балла.
	Entries []RankedStudent
}

// Truncated возвращает true, если запрошено больше студентов, чем есть.
func (rk *Ranking) Truncated() bool {
	return rk.Requested > rk.Available
}

// Shown возвращает количество показанных студентов.
func (rk *Ranking) Shown() int {
	return len(rk.Entries)
}

// ranked сортирует всех студентов по убыванию среднего балла.
// При равенстве выше студент с меньшим номером.
func (r *Roster) ranked() []RankedStudent {
	entries := make([]RankedStudent, 0, len(r.order))
	for _, s := range r.List() {
		entries = append(entries, RankedStudent{Student: s, Average: s.Average()})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Average != entries[j].Average {
			return entries[i].Average > entries[j].Average
		}
		return entries[i].Student.RollNumber < entries[j].Student.RollNumber
	})
	for i := range entries {
		entries[i].Rank = Rank(i + 1)
	}
	return entries
}

// Standings возвращает всех студентов в порядке рейтинга.
// Для пустого журнала - пустой срез.
func (r *Roster) Standings() []RankedStudent {
	return r.ranked()
}

// TopPerformer возвращает студента с максимальным средним баллом.
// Возвращает ErrEmptyRoster для пустого журнала.
func (r *Roster) TopPerformer() (*RankedStudent, error) {
	if r.Len() == 0 {
		return nil, shared.ErrEmptyRoster
	}
	top := r.ranked()[0]
	return &top, nil
}

// TopK возвращает min(k, Len()) лучших студентов.
// Пустой журнал проверяется раньше k: ErrEmptyRoster, затем ErrInvalidTopK для k <= 0.
func (r *Roster) TopK(k int) (*Ranking, error) {
	if r.Len() == 0 {
		return nil, shared.ErrEmptyRoster
	}
	if k <= 0 {
		return nil, shared.ErrInvalidTopK
	}
	entries := r.ranked()
	n := min(k, len(entries))
	return &Ranking{
		Requested: k,
		Available: len(entries),
		Entries:   entries[:n],
	}, nil
}

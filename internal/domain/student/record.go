package student

// Record - структурная форма студента для сохранения и загрузки.
// Поля и JSON-ключи совпадают с форматом файла журнала.
type Record struct {
	Name       string         `json:"name"`
	RollNumber int            `json:"roll_number"`
	Grades     map[string]int `json:"grades"`
}

// ToRecord преобразует студента в структурную запись.
func (s *Student) ToRecord() Record {
	grades := make(map[string]int, len(s.Grades))
	for subject, m := range s.Grades {
		grades[subject] = int(m)
	}
	return Record{
		Name:       s.Name,
		RollNumber: int(s.RollNumber),
		Grades:     grades,
	}
}

// FromRecord восстанавливает студента из записи.
// Оценки не проверяются: данные из хранилища принимаются как есть.
func FromRecord(r Record) *Student {
	s := NewStudent(r.Name, RollNumber(r.RollNumber))
	for subject, m := range r.Grades {
		s.Grades[subject] = Marks(m)
	}
	return s
}

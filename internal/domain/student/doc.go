// Package student содержит доменную модель студента журнала успеваемости.
//
// Пакет определяет:
//
//   - Сущность Student: имя, номер (RollNumber) и оценки по предметам
//   - Value Objects: RollNumber, Marks
//   - Record - структурную форму для сохранения в файл
//
// # Инварианты
//
// Оценка, выставленная через AddMarks, всегда в диапазоне [0, 100].
// Оценки, восстановленные через FromRecord, не проверяются повторно:
// содержимое хранилища считается доверенным.
//
// Средний балл (Average) не хранится, а вычисляется:
//
//	s := NewStudent("Ada", 1)
//	_ = s.AddMarks("Math", 90)
//	_ = s.AddMarks("CS", 80)
//	s.Average() // 85.0
package student

// Package month содержит функции календарной арифметики по месяцам.
// Все вычисления ведутся по UTC-полям даты, чтобы результат не зависел
// от часового пояса сервера или клиента.
package month

import (
	"time"
)

// TruncateUTC приводит дату к полуночи UTC того же календарного дня (по UTC).
func TruncateUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// FirstDay возвращает первый день месяца даты ref (полночь UTC).
func FirstDay(ref time.Time) time.Time {
	u := ref.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// LastDay возвращает последний день месяца даты ref (полночь UTC).
// Считается как нулевой день следующего месяца, поэтому корректно
// обрабатывает месяцы из 28, 29, 30 и 31 дня.
func LastDay(ref time.Time) time.Time {
	u := ref.UTC()
	return time.Date(u.Year(), u.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// Length возвращает количество дней в месяце даты ref.
func Length(ref time.Time) int {
	return LastDay(ref).Day()
}

// Elapsed считает разницу в календарных месяцах между from и to.
// Дни месяца не учитываются: 31 января и 1 февраля отличаются на один месяц.
// Результат отрицательный, если to раньше from.
func Elapsed(from, to time.Time) int {
	f, t := from.UTC(), to.UTC()
	return (t.Year()-f.Year())*12 + int(t.Month()) - int(f.Month())
}

package billing

import "fmt"

// Unit единица периода списания.
type Unit int

const (
	// UnitUnknown период не определён; ведёт себя как ежемесячный.
	UnitUnknown Unit = iota
	// UnitFixed30Day списание каждые 30 дней независимо от календаря.
	UnitFixed30Day
	// UnitMonths списание раз в N календарных месяцев.
	UnitMonths
	// UnitYears списание раз в N лет.
	UnitYears
)

const (
	// FixedCycleDays шаг фиксированного периода в днях.
	FixedCycleDays = 30
	// YearlyCycleDivisor делитель среднемесячной суммы для любого годового периода.
	// Множитель лет не учитывается: «2年» делится на 12, а не на 24.
	YearlyCycleDivisor = 12

	monthsPerYear = 12
)

// Cycle описывает правило повторения платежа.
// Нулевое значение означает неизвестный период и трактуется как EveryNMonths(1).
type Cycle struct {
	Unit Unit
	N    int
}

// Fixed30Day возвращает период «каждые 30 дней».
func Fixed30Day() Cycle {
	return Cycle{Unit: UnitFixed30Day, N: 1}
}

// EveryNMonths возвращает период «раз в n месяцев».
func EveryNMonths(n int) Cycle {
	return Cycle{Unit: UnitMonths, N: n}
}

// EveryNYears возвращает период «раз в n лет».
func EveryNYears(n int) Cycle {
	return Cycle{Unit: UnitYears, N: n}
}

func (c Cycle) count() int {
	if c.N <= 0 {
		return 1
	}
	return c.N
}

// IntervalMonths возвращает длину периода в календарных месяцах.
// Для фиксированного 30-дневного периода возвращает 0: он не привязан к месяцам.
func (c Cycle) IntervalMonths() int {
	switch c.Unit {
	case UnitFixed30Day:
		return 0
	case UnitYears:
		return c.count() * monthsPerYear
	default:
		return c.count()
	}
}

// AverageDivisor возвращает делитель для приведения суммы платежа к одному месяцу.
func (c Cycle) AverageDivisor() int {
	switch c.Unit {
	case UnitFixed30Day:
		return 1
	case UnitYears:
		return YearlyCycleDivisor
	default:
		return c.count()
	}
}

func (c Cycle) String() string {
	switch c.Unit {
	case UnitFixed30Day:
		return "every 30 days"
	case UnitMonths:
		return fmt.Sprintf("every %d months", c.count())
	case UnitYears:
		return fmt.Sprintf("every %d years", c.count())
	default:
		return "unknown (monthly)"
	}
}

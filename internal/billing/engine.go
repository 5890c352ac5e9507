// Package billing вычисляет график регулярных платежей по подпискам:
// в какие дни текущего месяца ожидается списание, сколько всего нужно
// заплатить в этом месяце и какова среднемесячная стоимость подписок.
//
// Пакет не выполняет ввода-вывода и не изменяет входные записи,
// поэтому Engine безопасно использовать из нескольких горутин.
package billing

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/month"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
)

// ErrOutOfRange возвращается, когда дата договора или опорная дата
// выходит за поддерживаемый диапазон лет.
var ErrOutOfRange = errors.New("date outside supported range")

const (
	// DefaultMinYear нижняя граница поддерживаемых дат по умолчанию.
	DefaultMinYear = 1970
	// DefaultMaxYear верхняя граница поддерживаемых дат по умолчанию.
	DefaultMaxYear = 2200
)

// DayPolicy определяет, что делать с днём договора, которого нет в опорном месяце
// (например, 31 число в месяце из 30 дней).
type DayPolicy int

const (
	// DayAsIs возвращает день договора без изменений, даже если такого дня в месяце нет.
	DayAsIs DayPolicy = iota
	// DayClampToMonthEnd переносит платёж на последний день месяца.
	DayClampToMonthEnd
)

// ParseDayPolicy разбирает значение политики из конфигурации.
func ParseDayPolicy(s string) (DayPolicy, error) {
	switch s {
	case "", "as_is":
		return DayAsIs, nil
	case "clamp":
		return DayClampToMonthEnd, nil
	default:
		return DayAsIs, fmt.Errorf("billing.ParseDayPolicy: unknown day policy %q", s)
	}
}

// Record подписка в том виде, в котором её видит движок расчёта.
type Record struct {
	ID           int64
	Amount       int
	ContractDate *time.Time // nil, если дата договора не указана
	Cycle        Cycle
}

// Due связывает подписку с днями платежей в опорном месяце.
// Err заполнен, если дни не удалось вычислить.
type Due struct {
	Record Record
	Days   []int
	Err    error
}

// Summary объединяет все показатели месяца для одного набора подписок.
type Summary struct {
	Total   int     // сумма к оплате в опорном месяце
	Average int     // среднемесячная стоимость
	Due     []Due   // подписки с платежами в этом месяце, по возрастанию первого дня
	Failed  []int64 // ID подписок, для которых не удалось построить график
}

// Engine рассчитывает график платежей.
type Engine struct {
	log      *slog.Logger
	minYear  int
	maxYear  int
	policy   DayPolicy
	maxSteps int
}

// Option настраивает Engine.
type Option func(*Engine)

// WithYearRange задаёт поддерживаемый диапазон лет (включительно).
func WithYearRange(minYear, maxYear int) Option {
	return func(e *Engine) {
		e.minYear = minYear
		e.maxYear = maxYear
	}
}

// WithDayPolicy задаёт политику для несуществующих дней месяца.
func WithDayPolicy(p DayPolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// New создаёт Engine. Лимит шагов 30-дневной проекции выводится из диапазона лет.
func New(log *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		log:     log,
		minYear: DefaultMinYear,
		maxYear: DefaultMaxYear,
		policy:  DayAsIs,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.maxYear < e.minYear {
		e.maxYear = e.minYear
	}
	e.maxSteps = stepBudget(e.minYear, e.maxYear)
	return e
}

// stepBudget максимальное число 30-дневных шагов между любыми двумя датами диапазона.
func stepBudget(minYear, maxYear int) int {
	from := time.Date(minYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(maxYear+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	days := (to.Unix() - from.Unix()) / (24 * 60 * 60)
	return int(days/FixedCycleDays) + 2
}

func (e *Engine) inRange(t time.Time) bool {
	y := t.UTC().Year()
	return y >= e.minYear && y <= e.maxYear
}

// DueDays возвращает дни месяца даты ref, на которые приходится платёж по подписке.
// Дни упорядочены по возрастанию. Пустой результат означает, что платежа в этом месяце нет.
func (e *Engine) DueDays(rec Record, ref time.Time) ([]int, error) {
	const op = "billing.DueDays"
	if rec.ContractDate == nil {
		return nil, nil
	}

	contract := month.TruncateUTC(*rec.ContractDate)
	if !e.inRange(contract) || !e.inRange(ref) {
		return nil, fmt.Errorf("%s: subscription %d, contract %s, reference %s: %w",
			op, rec.ID, contract.Format(time.DateOnly), ref.UTC().Format(time.DateOnly), ErrOutOfRange)
	}

	first := month.FirstDay(ref)
	last := month.LastDay(ref)

	if rec.Cycle.Unit == UnitFixed30Day {
		days, err := e.fixedCycleDays(contract, first, last)
		if err != nil {
			return nil, fmt.Errorf("%s: subscription %d: %w", op, rec.ID, err)
		}
		return days, nil
	}

	elapsed := month.Elapsed(contract, ref)
	if elapsed < 0 || elapsed%rec.Cycle.IntervalMonths() != 0 {
		return nil, nil
	}
	return []int{e.dayInMonth(contract.Day(), last)}, nil
}

func (e *Engine) fixedCycleDays(contract, first, last time.Time) ([]int, error) {
	next := contract
	steps := 0
	for next.Before(first) {
		if steps >= e.maxSteps {
			return nil, fmt.Errorf("projection exceeded %d steps: %w", e.maxSteps, ErrOutOfRange)
		}
		next = next.AddDate(0, 0, FixedCycleDays)
		steps++
	}

	var days []int
	for !next.After(last) {
		if steps >= e.maxSteps {
			return nil, fmt.Errorf("projection exceeded %d steps: %w", e.maxSteps, ErrOutOfRange)
		}
		days = append(days, next.Day())
		next = next.AddDate(0, 0, FixedCycleDays)
		steps++
	}
	return days, nil
}

func (e *Engine) dayInMonth(day int, last time.Time) int {
	if e.policy == DayClampToMonthEnd && day > last.Day() {
		return last.Day()
	}
	return day
}

// MonthlyDue вычисляет дни платежей для каждой подписки и общую сумму к оплате
// в месяце даты ref. Порядок результата совпадает с порядком входа.
// Ошибки по отдельным подпискам логируются и объединяются в возвращаемую ошибку,
// такие подписки получают пустой список дней.
func (e *Engine) MonthlyDue(recs []Record, ref time.Time) (int, []Due, error) {
	total := 0
	annotated := make([]Due, 0, len(recs))
	var errs []error

	for _, rec := range recs {
		days, err := e.DueDays(rec, ref)
		if err != nil {
			e.log.Error("failed to project due days",
				slog.Int64("subscription_id", rec.ID), sl.Err(err))
			errs = append(errs, err)
			days = nil
		}
		total += rec.Amount * len(days)
		annotated = append(annotated, Due{Record: rec, Days: days, Err: err})
	}
	return total, annotated, errors.Join(errs...)
}

// MonthlyAverage возвращает среднемесячную стоимость подписок,
// округлённую до целого (половина округляется вверх).
func MonthlyAverage(recs []Record) int {
	var sum float64
	for _, rec := range recs {
		sum += float64(rec.Amount) / float64(rec.Cycle.AverageDivisor())
	}
	return int(math.Floor(sum + 0.5))
}

// DueThisMonthSorted возвращает только подписки с платежами в месяце даты ref,
// отсортированные по первому дню платежа. Порядок равных сохраняется.
func (e *Engine) DueThisMonthSorted(recs []Record, ref time.Time) []Due {
	_, annotated, _ := e.MonthlyDue(recs, ref)
	return dueOnly(annotated)
}

// Summarize считает все показатели месяца за один проход.
func (e *Engine) Summarize(recs []Record, ref time.Time) Summary {
	total, annotated, _ := e.MonthlyDue(recs, ref)

	var failed []int64
	for _, d := range annotated {
		if d.Err != nil {
			failed = append(failed, d.Record.ID)
		}
	}

	return Summary{
		Total:   total,
		Average: MonthlyAverage(recs),
		Due:     dueOnly(annotated),
		Failed:  failed,
	}
}

func dueOnly(annotated []Due) []Due {
	res := make([]Due, 0, len(annotated))
	for _, d := range annotated {
		if len(d.Days) > 0 {
			res = append(res, d)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Days[0] < res[j].Days[0]
	})
	return res
}

// Package cyclelabel преобразует текстовые названия периодов оплаты из справочника
// payment_cycles («30日», «1ヶ月», «6ヶ月», «1年» и т.п.) в billing.Cycle.
//
// Разбор выполняется один раз на границе доступа к данным, движок расчёта строки не видит.
package cyclelabel

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/subscription-tracker/internal/billing"
)

const (
	// Fixed30DayMarker признак фиксированного 30-дневного периода.
	Fixed30DayMarker = "30日"
	// YearMarker признак годового периода.
	YearMarker = "年"
)

var digits = regexp.MustCompile(`\d+`)

// Parse возвращает период по названию.
//
// Метка с «30日» всегда даёт Fixed30Day. Иначе берётся первое число из метки
// (1, если чисел нет), а метка с «年» даёт EveryNYears. Нераспознанная метка
// молча трактуется как ежемесячная оплата.
func Parse(label string) billing.Cycle {
	if strings.Contains(label, Fixed30DayMarker) {
		return billing.Fixed30Day()
	}

	n := 1
	if m := digits.FindString(label); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			n = v
		}
	}

	if strings.Contains(label, YearMarker) {
		return billing.EveryNYears(n)
	}
	return billing.EveryNMonths(n)
}

// ParsePtr Parse для необязательной метки: nil даёт нулевой (неизвестный) период.
func ParsePtr(label *string) billing.Cycle {
	if label == nil {
		return billing.Cycle{}
	}
	return Parse(*label)
}

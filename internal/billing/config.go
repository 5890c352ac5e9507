package billing

import (
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/subscription-tracker/internal/config"
)

// NewFromConfig создаёт Engine по секции billing конфига.
func NewFromConfig(cfg config.Billing, log *slog.Logger) (*Engine, error) {
	const op = "billing.NewFromConfig"
	policy, err := ParseDayPolicy(cfg.DayPolicy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return New(log, WithYearRange(cfg.MinYear, cfg.MaxYear), WithDayPolicy(policy)), nil
}

package cyclelabel

import (
	"github.com/magabrotheeeer/subscription-tracker/internal/billing"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// ToRecord переводит подписку из хранилища во входную запись движка расчёта.
func ToRecord(sub *models.Subscription) billing.Record {
	return billing.Record{
		ID:           sub.ID,
		Amount:       sub.Amount,
		ContractDate: sub.ContractDate,
		Cycle:        ParsePtr(sub.PaymentCycleName),
	}
}

// ToRecords ToRecord для списка с сохранением порядка.
func ToRecords(subs []*models.Subscription) []billing.Record {
	recs := make([]billing.Record, 0, len(subs))
	for _, sub := range subs {
		recs = append(recs, ToRecord(sub))
	}
	return recs
}

// Package models содержит доменные структуры трекера подписок,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Subscription подписка пользователя в том виде, в котором она хранится в базе
// вместе с названиями связанных справочников.
// Необязательные поля равны nil, если пользователь их не заполнил.
type Subscription struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"user_id"`
	SubscriptionName  string     `json:"subscription_name"`
	CategoryID        int64      `json:"category_id"`
	CategoryName      *string    `json:"category_name,omitempty"`
	Amount            int        `json:"amount"` // сумма в иенах
	ContractDate      *time.Time `json:"contract_date,omitempty"`
	PaymentCycleID    *int64     `json:"payment_cycle_id,omitempty"`
	PaymentCycleName  *string    `json:"payment_cycle,omitempty"`
	PaymentDate       *int       `json:"payment_date,omitempty"` // день месяца 1..31
	PaymentMethodID   *int64     `json:"payment_method_id,omitempty"`
	PaymentMethodName *string    `json:"payment_method,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// DummySubscription используется для приёма данных подписки из JSON-запроса
// перед валидацией и преобразованием в Subscription.
// Дата договора приходит строкой в формате 2006-01-02.
type DummySubscription struct {
	SubscriptionName string `json:"subscription_name" validate:"required,max=100"`
	CategoryID       int64  `json:"category_id" validate:"required,gt=0"`
	Amount           int    `json:"amount" validate:"required,gt=0"`
	ContractDate     string `json:"contract_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PaymentCycleID   *int64 `json:"payment_cycle_id,omitempty" validate:"omitempty,gt=0"`
	PaymentDate      *int   `json:"payment_date,omitempty" validate:"omitempty,min=1,max=31"`
	PaymentMethodID  *int64 `json:"payment_method_id,omitempty" validate:"omitempty,gt=0"`
	Notes            string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// ListQuery параметры постраничного списка подписок.
type ListQuery struct {
	UserID int64
	Sort   string // newest, oldest, price_desc, price_asc
	Limit  int
	Offset int
}

// Page страница списка подписок.
type Page struct {
	Items      []*Subscription `json:"items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	TotalCount int             `json:"total_count"`
}

// DueSubscription подписка с днями платежей в текущем месяце.
type DueSubscription struct {
	Subscription *Subscription `json:"subscription"`
	DueDays      []int         `json:"due_days"`
}

// MonthSummary сводка по платежам за месяц для главной страницы.
type MonthSummary struct {
	Month          string             `json:"month"` // 2006-01
	ThisMonthTotal int                `json:"this_month_total"`
	MonthlyAverage int                `json:"monthly_average"`
	DueThisMonth   []*DueSubscription `json:"due_this_month"`
	FailedIDs      []int64            `json:"failed_ids,omitempty"`
}

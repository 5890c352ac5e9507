package models

import "time"

// DueNotice сообщение о платеже, который приходится на сегодня.
// Публикуется планировщиком в RabbitMQ.
type DueNotice struct {
	UserID           int64     `json:"user_id"`
	Email            string    `json:"email"`
	SubscriptionID   int64     `json:"subscription_id"`
	SubscriptionName string    `json:"subscription_name"`
	Amount           int       `json:"amount"`
	DueDate          time.Time `json:"due_date"`
}

// OwnedSubscription подписка вместе с почтой владельца, нужна планировщику уведомлений.
type OwnedSubscription struct {
	Subscription
	Email string `json:"email"`
}

package models

// Category пользовательская категория подписок.
type Category struct {
	ID           int64  `json:"id"`
	CategoryName string `json:"category_name"`
	UserID       int64  `json:"user_id"`
}

// CategoryChange одно изменение в пакетном сохранении категорий.
// Без ID создание, с Deleted мягкое удаление, иначе переименование.
type CategoryChange struct {
	ID           int64  `json:"id,omitempty"`
	CategoryName string `json:"category_name" validate:"max=50"`
	Deleted      bool   `json:"deleted,omitempty"`
}

// DummyCategories тело запроса пакетного сохранения категорий.
type DummyCategories struct {
	Categories []CategoryChange `json:"categories" validate:"dive"`
}

// DefaultCategoryNames категории, создаваемые пользователю без категорий.
var DefaultCategoryNames = []string{"動画", "音楽", "本・雑誌"}

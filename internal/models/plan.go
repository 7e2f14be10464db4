package models

// Plan тарифный план абонемента. Справочник планов заполняется миграциями,
// через API он доступен только на чтение.
type Plan struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Price              float64 `json:"price"` // Цена в основной единице валюты
	DurationDays       int     `json:"duration_days"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

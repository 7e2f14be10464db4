// Package revenue содержит чистые функции агрегации выручки по временным
// корзинам. Функции не обращаются к хранилищу, на вход подаются успешные
// платежи из леджера.
package revenue

import "time"

// Point платёж для агрегации: сумма и момент создания записи леджера.
type Point struct {
	Amount    float64
	CreatedAt time.Time
}

// Bucket одна корзина временного ряда выручки.
type Bucket struct {
	Label   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// Last30Days раскладывает платежи по 30 дням, заканчивающимся днём now.
// Дни без платежей присутствуют в ряду с нулевой выручкой, порядок от
// старых к новым, метка в формате MM/DD.
func Last30Days(payments []Point, now time.Time) []Bucket {
	type day struct {
		key   string
		label string
	}
	days := make([]day, 0, 30)
	sums := make(map[string]float64, 30)
	for i := 29; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		key := d.Format("2006-01-02")
		days = append(days, day{key: key, label: d.Format("01/02")})
		sums[key] = 0
	}

	for _, p := range payments {
		key := p.CreatedAt.Format("2006-01-02")
		if _, ok := sums[key]; ok {
			sums[key] += p.Amount
		}
	}

	result := make([]Bucket, 0, 30)
	for _, d := range days {
		result = append(result, Bucket{Label: d.label, Revenue: sums[d.key]})
	}
	return result
}

// Last6Months раскладывает платежи по шести календарным месяцам,
// заканчивающимся месяцем now, с переходом через границу года.
// Платежи сопоставляются корзине по имени месяца.
func Last6Months(payments []Point, now time.Time) []Bucket {
	labels := make([]string, 0, 6)
	sums := make(map[string]float64, 6)
	currentMonth := int(now.Month()) - 1
	for i := 5; i >= 0; i-- {
		m := time.Month((currentMonth-i+12)%12 + 1)
		label := m.String()[:3]
		labels = append(labels, label)
		sums[label] = 0
	}

	for _, p := range payments {
		label := p.CreatedAt.Month().String()[:3]
		if _, ok := sums[label]; ok {
			sums[label] += p.Amount
		}
	}

	result := make([]Bucket, 0, 6)
	for _, label := range labels {
		result = append(result, Bucket{Label: label, Revenue: sums[label]})
	}
	return result
}

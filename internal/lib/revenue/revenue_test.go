package revenue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLast30Days_ZeroFillAndOrder(t *testing.T) {
	now := time.Date(2024, 3, 30, 12, 0, 0, 0, time.UTC)
	payments := []Point{
		{Amount: 50, CreatedAt: time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)},
		{Amount: 150, CreatedAt: time.Date(2024, 3, 25, 18, 0, 0, 0, time.UTC)},
	}

	buckets := Last30Days(payments, now)
	require.Len(t, buckets, 30)

	// Порядок от старых дней к новым
	assert.Equal(t, "03/01", buckets[0].Label)
	assert.Equal(t, "03/30", buckets[29].Label)

	var nonZero int
	for _, b := range buckets {
		switch b.Label {
		case "03/10":
			assert.Equal(t, 50.0, b.Revenue)
			nonZero++
		case "03/25":
			assert.Equal(t, 150.0, b.Revenue)
			nonZero++
		default:
			assert.Zero(t, b.Revenue)
		}
	}
	assert.Equal(t, 2, nonZero)
}

func TestLast30Days_PaymentOutsideWindowIgnored(t *testing.T) {
	now := time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC)
	payments := []Point{
		{Amount: 999, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	buckets := Last30Days(payments, now)
	for _, b := range buckets {
		assert.Zero(t, b.Revenue)
	}
}

func TestLast30Days_SameDaySummed(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	payments := []Point{
		{Amount: 100, CreatedAt: time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)},
		{Amount: 40, CreatedAt: time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC)},
	}

	buckets := Last30Days(payments, now)
	for _, b := range buckets {
		if b.Label == "06/10" {
			assert.Equal(t, 140.0, b.Revenue)
		}
	}
}

func TestLast6Months_WrapAroundYear(t *testing.T) {
	// Февраль: окно сентябрь-февраль, переход через границу года
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	payments := []Point{
		{Amount: 300, CreatedAt: time.Date(2023, 12, 5, 0, 0, 0, 0, time.UTC)},
		{Amount: 200, CreatedAt: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
	}

	buckets := Last6Months(payments, now)
	require.Len(t, buckets, 6)

	labels := make([]string, 0, 6)
	for _, b := range buckets {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"Sep", "Oct", "Nov", "Dec", "Jan", "Feb"}, labels)

	for _, b := range buckets {
		switch b.Label {
		case "Dec":
			assert.Equal(t, 300.0, b.Revenue)
		case "Jan":
			assert.Equal(t, 200.0, b.Revenue)
		default:
			assert.Zero(t, b.Revenue)
		}
	}
}

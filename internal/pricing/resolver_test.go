package pricing

import (
	"testing"
	"time"

	"cafe-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offer(discount string, start, end time.Time) model.SpecialOffer {
	return model.SpecialOffer{
		ID:                 uuid.New(),
		Name:               "Christmas",
		FoodItemID:         uuid.New(),
		DiscountPercentage: decimal.RequireFromString(discount),
		StartDate:          start,
		EndDate:            end,
	}
}

func TestEffectivePrice_NoOffers(t *testing.T) {
	base := decimal.RequireFromString("150.00")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	price := EffectivePrice(base, nil, now)

	assert.True(t, price.Equal(base))
}

func TestEffectivePrice_ActiveOffer(t *testing.T) {
	base := decimal.RequireFromString("150.00")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	offers := []model.SpecialOffer{
		offer("20", now.Add(-24*time.Hour), now.Add(24*time.Hour)),
	}

	price := EffectivePrice(base, offers, now)

	assert.True(t, price.Equal(decimal.RequireFromString("120.00")), "got %s", price)
}

func TestEffectivePrice_InactiveOffer(t *testing.T) {
	base := decimal.RequireFromString("150.00")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	offers := []model.SpecialOffer{
		offer("20", now.Add(24*time.Hour), now.Add(48*time.Hour)),
	}

	price := EffectivePrice(base, offers, now)

	assert.True(t, price.Equal(base))
}

func TestEffectivePrice_BoundariesInclusive(t *testing.T) {
	base := decimal.RequireFromString("100.00")
	start := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 27, 0, 0, 0, 0, time.UTC)
	offers := []model.SpecialOffer{offer("50", start, end)}
	discounted := decimal.RequireFromString("50.00")

	// Active exactly at the start instant.
	assert.True(t, EffectivePrice(base, offers, start).Equal(discounted))

	// Still active exactly at the end instant.
	assert.True(t, EffectivePrice(base, offers, end).Equal(discounted))

	// No longer active just past the end.
	assert.True(t, EffectivePrice(base, offers, end.Add(time.Nanosecond)).Equal(base))
}

func TestEffectivePrice_NoStacking(t *testing.T) {
	base := decimal.RequireFromString("200.00")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	offers := []model.SpecialOffer{
		offer("10", now.Add(-time.Hour), now.Add(time.Hour)),
		offer("25", now.Add(-time.Hour), now.Add(time.Hour)),
	}

	// Highest discount wins; the 10% offer is not applied on top.
	price := EffectivePrice(base, offers, now)
	assert.True(t, price.Equal(decimal.RequireFromString("150.00")), "got %s", price)
}

func TestActiveOffer_TieBreakEarliestStart(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	earlier := offer("20", now.Add(-48*time.Hour), now.Add(time.Hour))
	later := offer("20", now.Add(-time.Hour), now.Add(time.Hour))

	applied, ok := ActiveOffer([]model.SpecialOffer{later, earlier}, now)

	require.True(t, ok)
	assert.Equal(t, earlier.ID, applied.ID)
}

func TestEffectivePrice_Rounding(t *testing.T) {
	base := decimal.RequireFromString("99.99")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	offers := []model.SpecialOffer{
		offer("33.33", now.Add(-time.Hour), now.Add(time.Hour)),
	}

	price := EffectivePrice(base, offers, now)

	// 99.99 - 99.99*0.3333 = 66.663333 -> 66.66
	assert.True(t, price.Equal(decimal.RequireFromString("66.66")), "got %s", price)
}

func TestEffectivePrice_DoesNotMutateInputs(t *testing.T) {
	base := decimal.RequireFromString("80.00")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	offers := []model.SpecialOffer{
		offer("15", now.Add(-time.Hour), now.Add(time.Hour)),
	}
	originalDiscount := offers[0].DiscountPercentage

	_ = EffectivePrice(base, offers, now)

	assert.True(t, offers[0].DiscountPercentage.Equal(originalDiscount))
	assert.True(t, base.Equal(decimal.RequireFromString("80.00")))
}

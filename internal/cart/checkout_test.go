package cart

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckout_SnapshotsAndClears(t *testing.T) {
	t.Parallel()

	c := sampleCart()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	r, err := Checkout(c, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3210), r.TotalPrice)
	assert.Equal(t, 3, r.TotalCount)
	assert.Equal(t, now, r.CheckedOutAt)
	assert.Equal(t, []int64{1, 2}, ids(r.Items))

	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.TotalPrice())
}

func TestCheckout_EmptyCart(t *testing.T) {
	t.Parallel()

	r, err := Checkout(New(), time.Now())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, r)
}

func TestFormatter_Amount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$980", NewFormatter("en", "$", 0).Amount(980))
	assert.Equal(t, "$3,210", NewFormatter("en", "$", 0).Amount(3210))
	assert.Equal(t, "$1,234.56", NewFormatter("en", "$", 2).Amount(123456))
	assert.Equal(t, "$3,210", NewFormatter("not a locale!", "$", -1).Amount(3210))
	assert.Equal(t, "$0.05", NewFormatter("en", "$", 2).Amount(5))
	assert.Equal(t, "$-12.30", NewFormatter("en", "$", 2).Amount(-1230))
	assert.Equal(t, "€1.234,56", NewFormatter("de", "€", 2).Amount(123456))
}

func TestFormatter_AmountIsExactForLargeValues(t *testing.T) {
	t.Parallel()

	// 2^53 + 1 is not representable as a float64
	assert.Equal(t, "$90,071,992,547,409.93", NewFormatter("en", "$", 2).Amount(9007199254740993))
	assert.Equal(t, "$92,233,720,368,547,758.07", NewFormatter("en", "$", 2).Amount(math.MaxInt64))
}

func TestFormatter_Summary(t *testing.T) {
	t.Parallel()

	r, err := Checkout(sampleCart(), time.Now())
	require.NoError(t, err)

	want := "Order placed!\n\n" +
		"Items:\n" +
		"Premium Cat Food x 2 = $1,960\n" +
		"Pet Water Fountain x 1 = $1,250\n" +
		"\nTotal: $3,210\n\n" +
		"Thank you for your purchase!"
	assert.Equal(t, want, NewFormatter("en", "$", 0).Summary(r))
}

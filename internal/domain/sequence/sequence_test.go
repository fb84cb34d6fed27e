package sequence_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cafe-pos-api/internal/domain/sequence"
)

func TestDayKeyYFormat(t *testing.T) {
	ts := time.Date(2025, 12, 29, 23, 30, 0, 0, time.UTC)
	key := sequence.DayKey(sequence.PrefixOrder, ts, time.UTC)
	assert.Equal(t, "POS-20251229", key)
	assert.Equal(t, "POS-20251229-0001", sequence.Format(key, 1))
	assert.Equal(t, "POS-20251229-12345", sequence.Format(key, 12345))
}

func TestDayKey_RespetaZonaHoraria(t *testing.T) {
	ts := time.Date(2025, 12, 29, 23, 30, 0, 0, time.UTC)
	bogota := time.FixedZone("COT", -5*3600)
	tokyo := time.FixedZone("JST", 9*3600)
	assert.Equal(t, "PINV-20251229", sequence.DayKey(sequence.PrefixPurchaseInvoice, ts, bogota))
	assert.Equal(t, "PINV-20251230", sequence.DayKey(sequence.PrefixPurchaseInvoice, ts, tokyo))
}

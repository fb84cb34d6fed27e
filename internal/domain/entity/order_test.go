package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

func TestNormalizePaymentMethod(t *testing.T) {
	cases := map[string]string{
		"card":    entity.PaymentCard,
		"CARD":    entity.PaymentCard,
		" Other":  entity.PaymentOther,
		"":        entity.PaymentCash,
		"bitcoin": entity.PaymentCash,
	}
	for in, want := range cases {
		assert.Equal(t, want, entity.NormalizePaymentMethod(in), in)
	}
}

package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cafe-pos-api/internal/domain/authz"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		role, resource, action string
		want                   bool
	}{
		{"admin", authz.ResourceProducts, authz.ActionCreate, true},
		{"cashier", authz.ResourceProducts, authz.ActionCreate, false},
		{"cashier", authz.ResourceProducts, authz.ActionList, true},
		{"cashier", authz.ResourceOrders, authz.ActionCreate, true},
		{"cashier", authz.ResourceOrders, authz.ActionRead, true},
		{"cashier", authz.ResourceOrders, authz.ActionList, false},
		{"cashier", authz.ResourceOrders, authz.ActionVoid, false},
		{"admin", authz.ResourceOrders, authz.ActionVoid, true},
		{"cashier", authz.ResourceSalesSummary, authz.ActionRead, false},
		{"cashier", authz.ResourceUsers, authz.ActionList, false},
		{"admin", authz.ResourcePurchaseInvoices, authz.ActionPost, true},
		{"cashier", authz.ResourceStock, authz.ActionCreate, false},
		{"", authz.ResourceProducts, authz.ActionList, false},
		{"admin", "unknown", authz.ActionRead, false},
		{"admin", authz.ResourceUsers, authz.ActionDelete, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, authz.Allowed(tc.role, tc.resource, tc.action),
			"%s %s %s", tc.role, tc.resource, tc.action)
	}
}

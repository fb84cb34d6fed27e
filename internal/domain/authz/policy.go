// Package authz decide qué rol puede ejecutar qué acción sobre qué recurso.
// Es una función pura sobre una tabla estática; el middleware HTTP la invoca
// de forma uniforme antes de cada handler protegido.
package authz

import "github.com/jhoicas/cafe-pos-api/internal/domain/entity"

// Recursos protegidos.
const (
	ResourceProducts         = "products"
	ResourceOrders           = "orders"
	ResourceSalesSummary     = "sales_summary"
	ResourceUsers            = "users"
	ResourceStock            = "stock"
	ResourceSuppliers        = "suppliers"
	ResourcePurchaseInvoices = "purchase_invoices"
)

// Acciones.
const (
	ActionRead   = "read"
	ActionList   = "list"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionVoid   = "void"
	ActionPost   = "post"
)

type rule struct {
	resource string
	action   string
}

var (
	adminOnly   = []string{entity.RoleAdmin}
	anyStaff    = []string{entity.RoleAdmin, entity.RoleCashier}
	policyTable = map[rule][]string{
		{ResourceProducts, ActionRead}:   anyStaff,
		{ResourceProducts, ActionList}:   anyStaff,
		{ResourceProducts, ActionCreate}: adminOnly,
		{ResourceProducts, ActionUpdate}: adminOnly,
		{ResourceProducts, ActionDelete}: adminOnly,

		// checkout y recibo los usa el cajero; el listado y la anulación solo admin
		{ResourceOrders, ActionCreate}: anyStaff,
		{ResourceOrders, ActionRead}:   anyStaff,
		{ResourceOrders, ActionList}:   adminOnly,
		{ResourceOrders, ActionVoid}:   adminOnly,

		{ResourceSalesSummary, ActionRead}: adminOnly,

		{ResourceUsers, ActionList}:   adminOnly,
		{ResourceUsers, ActionCreate}: adminOnly,
		{ResourceUsers, ActionUpdate}: adminOnly,

		{ResourceStock, ActionCreate}: adminOnly,
		{ResourceStock, ActionList}:   adminOnly,

		{ResourceSuppliers, ActionList}:   adminOnly,
		{ResourceSuppliers, ActionCreate}: adminOnly,
		{ResourceSuppliers, ActionUpdate}: adminOnly,
		{ResourceSuppliers, ActionDelete}: adminOnly,

		{ResourcePurchaseInvoices, ActionList}:   adminOnly,
		{ResourcePurchaseInvoices, ActionRead}:   adminOnly,
		{ResourcePurchaseInvoices, ActionCreate}: adminOnly,
		{ResourcePurchaseInvoices, ActionPost}:   adminOnly,
	}
)

// Allowed indica si role puede ejecutar action sobre resource.
// Combinaciones no declaradas se deniegan.
func Allowed(role, resource, action string) bool {
	for _, r := range policyTable[rule{resource, action}] {
		if r == role {
			return true
		}
	}
	return false
}

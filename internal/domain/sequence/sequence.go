// Package sequence arma los números legibles de órdenes y facturas de compra
// (PREFIJO-YYYYMMDD-NNNN) a partir de un contador atómico por día.
package sequence

import (
	"fmt"
	"time"
)

// Prefijos de numeración.
const (
	PrefixOrder           = "POS"
	PrefixPurchaseInvoice = "PINV"
)

// DayKey devuelve la clave del contador para el día calendario de t en loc, ej. "POS-20251229".
func DayKey(prefix string, t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%s-%s", prefix, t.Format("20060102"))
}

// Format arma el número final con secuencia de 4 dígitos (o más si se desborda).
func Format(key string, seq int64) string {
	return fmt.Sprintf("%s-%04d", key, seq)
}

package inventory

// LowStockGauge publica la cantidad de productos en alerta de stock (métrica Prometheus).
type LowStockGauge interface {
	SetLowStock(n int)
}

type nopGauge struct{}

func (nopGauge) SetLowStock(int) {}

// GaugeFunc adapta una función a LowStockGauge.
type GaugeFunc func(n int)

func (f GaugeFunc) SetLowStock(n int) { f(n) }

package sales

import (
	"strings"
	"time"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
)

const dayLayout = "2006-01-02"

// parseBound interpreta una fecha YYYY-MM-DD (inicio o fin del día en loc) o un instante RFC3339.
// Cadena vacía devuelve nil.
func parseBound(field, s string, loc *time.Location, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if d, err := time.ParseInLocation(dayLayout, s, loc); err == nil {
		if endOfDay {
			d = d.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return &d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, domain.Invalid("Invalid %s date", field)
	}
	return &t, nil
}

// dayRange devuelve [inicio, fin] del día calendario de t en loc.
func dayRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

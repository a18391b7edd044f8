package report

import (
	"fmt"
	"sort"
	"time"
)

// Season ventana de temporada como día/mes de inicio y fin (inclusive).
// Si el fin es anterior al inicio la ventana termina el año siguiente.
type Season struct {
	StartMonth time.Month
	StartDay   int
	EndMonth   time.Month
	EndDay     int
}

// DefaultSeason 1 de octubre a 31 de diciembre.
var DefaultSeason = Season{StartMonth: time.October, StartDay: 1, EndMonth: time.December, EndDay: 31}

// ParseSeason lee inicio y fin en formato MM-DD.
func ParseSeason(start, end string) (Season, error) {
	s, err := time.Parse("01-02", start)
	if err != nil {
		return Season{}, fmt.Errorf("inicio de temporada %q: %w", start, err)
	}
	e, err := time.Parse("01-02", end)
	if err != nil {
		return Season{}, fmt.Errorf("fin de temporada %q: %w", end, err)
	}
	return Season{StartMonth: s.Month(), StartDay: s.Day(), EndMonth: e.Month(), EndDay: e.Day()}, nil
}

// Window fechas de inicio y fin de la temporada del año dado.
func (s Season) Window(year int) (from, to time.Time) {
	from = time.Date(year, s.StartMonth, s.StartDay, 0, 0, 0, 0, time.UTC)
	to = time.Date(year, s.EndMonth, s.EndDay, 0, 0, 0, 0, time.UTC)
	if to.Before(from) {
		to = to.AddDate(1, 0, 0)
	}
	return from, to
}

// Labels eje X (MM-DD) de la temporada del año dado.
func (s Season) Labels(year int) []string {
	from, to := s.Window(year)
	var labels []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		labels = append(labels, d.Format("01-02"))
	}
	return labels
}

// YearsToCompare pivote-2, pivote-1 y pivote filtrados por los disponibles;
// si ninguno existe, los últimos tres disponibles.
func YearsToCompare(pivot int, available []int) []int {
	avail := make(map[int]struct{}, len(available))
	for _, y := range available {
		avail[y] = struct{}{}
	}
	var years []int
	for _, y := range []int{pivot - 2, pivot - 1, pivot} {
		if _, ok := avail[y]; ok {
			years = append(years, y)
		}
	}
	if len(years) > 0 {
		return years
	}
	sorted := append([]int(nil), available...)
	sort.Ints(sorted)
	if len(sorted) > 3 {
		sorted = sorted[len(sorted)-3:]
	}
	return sorted
}

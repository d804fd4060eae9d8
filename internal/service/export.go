package service

import (
	"context"
	"strings"

	"github.com/fascinar/eventos-api/internal/model"
)

// availabilityCSVHeader is the exact header row of the export; column order
// and spelling are part of the interface consumed by the office
// spreadsheets and must not change.
const availabilityCSVHeader = "Staff,Email,Status,Horario_Disponivel,Observacoes,Escalado"

// statusPT translates a stored availability status for display.  A nil or
// "maybe" status reads as pending.
func statusPT(status *model.AvailabilityStatus) string {
	if status != nil {
		switch *status {
		case model.StatusAvailable:
			return "Disponível"
		case model.StatusUnavailable:
			return "Indisponível"
		}
	}
	return "Pendente"
}

// csvQuote double-quote-wraps a field, doubling embedded quotes, so that
// commas inside names and notes survive the round trip.
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// BuildAvailabilityCSV formats an event's per-staff breakdown as delimited
// text: one quoted row per staff member under the fixed header.
func BuildAvailabilityCSV(entries []model.StaffAvailabilityEntry) string {
	var b strings.Builder
	b.WriteString(availabilityCSVHeader)
	b.WriteString("\n")
	for _, e := range entries {
		scheduled := "Não"
		if e.Scheduled {
			scheduled = "Sim"
		}
		fields := []string{
			e.Name,
			e.Email,
			statusPT(e.Status),
			model.TimeRangeDisplay(e.Status, e.StartTime, e.EndTime),
			e.Notes,
			scheduled,
		}
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = csvQuote(f)
		}
		b.WriteString(strings.Join(quoted, ","))
		b.WriteString("\n")
	}
	return b.String()
}

// ExportEventAvailabilities renders the single-event breakdown as CSV.  It
// is a presentation transform over the same rows GetEventAvailabilities
// returns.
func (s *AdminAgg) ExportEventAvailabilities(ctx context.Context, eventID uint64) (string, error) {
	detail, err := s.GetEventAvailabilities(ctx, eventID)
	if err != nil {
		return "", err // already recorded by the deep fetch
	}
	return BuildAvailabilityCSV(detail.Entries), nil
}

// In file: internal/clinic/format.go
package clinic

import (
	"fmt"
	"strings"
	"time"
)

// Layouts follow the en-AU conventions the clinic's callers expect.
const (
	spokenDateLayout = "Monday 2 January 2006"
	spokenTimeLayout = "03:04 pm"
	clockLayout      = "02/01/2006, 03:04:05 pm"
)

// FormatAppointment renders an appointment for speech, e.g.
// "Chiropractic Initial with Jenny Jones on Wednesday 1 May 2024 at 09:00 am".
// Times the API sends in an unexpected shape are spoken as-is.
func FormatAppointment(a Appointment, loc *time.Location) string {
	when, err := time.Parse(time.RFC3339, a.AppointmentTime)
	if err != nil {
		return fmt.Sprintf("%s with %s at %s", a.AppointmentType, a.PractitionerName, a.AppointmentTime)
	}
	when = when.In(loc)
	return fmt.Sprintf("%s with %s on %s at %s",
		a.AppointmentType,
		a.PractitionerName,
		when.Format(spokenDateLayout),
		when.Format(spokenTimeLayout),
	)
}

// FormatAppointments joins several appointments with ", ".
func FormatAppointments(appointments []Appointment, loc *time.Location) string {
	parts := make([]string, len(appointments))
	for i, a := range appointments {
		parts[i] = FormatAppointment(a, loc)
	}
	return strings.Join(parts, ", ")
}

// FormatClock renders t in loc as "18/10/2026, 02:03:04 pm".
func FormatClock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(clockLayout)
}

// In file: internal/tools/clinic_info_tools.go
package tools

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dileep-u-k/voice-tool-gateway/internal/clinic"
)

// These tools answer from the clinic profile and the local clock; they make
// no outbound calls.

// CurrentTimeTool tells the caller the time in the clinic's timezone.
type CurrentTimeTool struct {
	loc   *time.Location
	place string
	now   func() time.Time
}

var _ ToolExecutor = (*CurrentTimeTool)(nil)

// NewCurrentTimeTool reports the time in loc. place is the spoken name of
// the timezone's city (e.g. "Brisbane").
func NewCurrentTimeTool(loc *time.Location, place string) *CurrentTimeTool {
	return &CurrentTimeTool{loc: loc, place: place, now: time.Now}
}

func (t *CurrentTimeTool) Definition() Tool {
	return NewFunctionTool(
		"getCurrentTime",
		fmt.Sprintf("Get the current time in %s (%s timezone)", t.place, t.loc.String()),
		ObjectSchema(nil),
	)
}

func (t *CurrentTimeTool) Execute(_ context.Context, _ Args) Outcome {
	current := clinic.FormatClock(t.now(), t.loc)
	log.Printf("Current %s time: %s", t.place, current)
	return Ok(fmt.Sprintf("The current time in %s is %s", t.place, current))
}

// AppointmentTypesTool lists the services and their durations.
type AppointmentTypesTool struct {
	types []clinic.AppointmentType
}

var _ ToolExecutor = (*AppointmentTypesTool)(nil)

func NewAppointmentTypesTool(profile clinic.Profile) *AppointmentTypesTool {
	return &AppointmentTypesTool{types: profile.AppointmentTypes}
}

func (t *AppointmentTypesTool) Definition() Tool {
	return NewFunctionTool(
		"getAppointmentTypes",
		"Get available appointment types and their durations",
		ObjectSchema(nil),
	)
}

func (t *AppointmentTypesTool) Execute(_ context.Context, _ Args) Outcome {
	entries := make([]string, len(t.types))
	for i, at := range t.types {
		entries[i] = fmt.Sprintf("%s (%d minutes)", at.Name, at.DurationMinutes)
	}
	log.Println("Retrieved appointment types")
	return Ok("Available appointment types: " + strings.Join(entries, ", "))
}

// PractitionersTool lists the practitioners and their specialties.
type PractitionersTool struct {
	practitioners []clinic.Practitioner
}

var _ ToolExecutor = (*PractitionersTool)(nil)

func NewPractitionersTool(profile clinic.Profile) *PractitionersTool {
	return &PractitionersTool{practitioners: profile.Practitioners}
}

func (t *PractitionersTool) Definition() Tool {
	return NewFunctionTool(
		"getPractitioners",
		"Get available practitioners and their specialties",
		ObjectSchema(nil),
	)
}

func (t *PractitionersTool) Execute(_ context.Context, _ Args) Outcome {
	entries := make([]string, len(t.practitioners))
	for i, p := range t.practitioners {
		entries[i] = fmt.Sprintf("%s (%s)", p.Name, p.Specialty)
	}
	log.Println("Retrieved practitioners")
	return Ok("Available practitioners: " + strings.Join(entries, ", "))
}

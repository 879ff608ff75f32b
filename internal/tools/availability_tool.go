// In file: internal/tools/availability_tool.go
package tools

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dileep-u-k/voice-tool-gateway/internal/clinic"
)

// CheckAvailabilityTool looks up open slots for a service on a date.
type CheckAvailabilityTool struct {
	api *clinic.Client
}

var _ ToolExecutor = (*CheckAvailabilityTool)(nil)

func NewCheckAvailabilityTool(api *clinic.Client) *CheckAvailabilityTool {
	return &CheckAvailabilityTool{api: api}
}

func (t *CheckAvailabilityTool) Definition() Tool {
	return NewFunctionTool(
		"checkAvailability",
		"Check availability for appointments on a specific date",
		ObjectSchema(map[string]*JSONSchema{
			"date": {
				Type:        "string",
				Description: "Date in YYYY-MM-DD format",
			},
			"appointment_type": {
				Type:        "string",
				Description: `Type of appointment (e.g., "Chiropractic Initial")`,
			},
			"practitioner_name": {
				Type:        "string",
				Description: "Specific practitioner name if requested",
			},
		}, "date", "appointment_type"),
	)
}

func (t *CheckAvailabilityTool) Execute(ctx context.Context, args Args) Outcome {
	date := args.String("date")
	appointmentType := args.String("appointment_type")
	practitioner := args.String("practitioner_name")

	withPractitioner := ""
	if practitioner != "" {
		withPractitioner = " with " + practitioner
	}
	log.Printf("Checking availability for %s on %s%s", appointmentType, date, withPractitioner)

	availability, err := t.api.CheckAvailability(ctx, clinic.AvailabilityQuery{
		Date:             date,
		AppointmentType:  appointmentType,
		PractitionerName: practitioner,
	})
	if err != nil {
		return Failed("Sorry, I couldn't check availability right now. Please try again later.", executionError("checkAvailability", err))
	}

	if len(availability.AvailableSlots) == 0 {
		return Ok(fmt.Sprintf("No availability found for %s on %s%s", appointmentType, date, withPractitioner))
	}
	slots := make([]string, len(availability.AvailableSlots))
	for i, slot := range availability.AvailableSlots {
		slots[i] = fmt.Sprintf("%s with %s", slot.Time, slot.PractitionerName)
	}
	return Ok(fmt.Sprintf("Available slots on %s: %s", date, strings.Join(slots, ", ")))
}

// executionError wraps a clinic client error, keeping the HTTP status when there is one.
func executionError(tool string, err error) *ExecutionError {
	return &ExecutionError{Tool: tool, StatusCode: clinic.StatusCode(err), Err: err}
}

// In file: internal/tools/appointment_tools.go
package tools

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dileep-u-k/voice-tool-gateway/internal/clinic"
)

// DefaultAppointmentLimit is used when the caller does not say how many
// upcoming appointments to read out.
const DefaultAppointmentLimit = 5

var minAppointmentLimit float64 = 1

// BookAppointmentTool books a slot for a verified patient.
type BookAppointmentTool struct {
	api *clinic.Client
	loc *time.Location
}

var _ ToolExecutor = (*BookAppointmentTool)(nil)

// NewBookAppointmentTool speaks booked times in loc.
func NewBookAppointmentTool(api *clinic.Client, loc *time.Location) *BookAppointmentTool {
	return &BookAppointmentTool{api: api, loc: loc}
}

func (t *BookAppointmentTool) Definition() Tool {
	return NewFunctionTool(
		"bookAppointment",
		"Book an appointment for a patient",
		ObjectSchema(map[string]*JSONSchema{
			"patient_id":        {Type: "string", Description: "Patient ID from verification"},
			"appointment_type":  {Type: "string", Description: "Type of appointment"},
			"practitioner_name": {Type: "string", Description: "Practitioner name"},
			"appointment_date":  {Type: "string", Description: "Appointment date in YYYY-MM-DD format"},
			"appointment_time":  {Type: "string", Description: "Appointment time in HH:MM format"},
			"notes":             {Type: "string", Description: "Additional notes or reason for visit"},
		}, "patient_id", "appointment_type", "practitioner_name", "appointment_date", "appointment_time"),
	)
}

func (t *BookAppointmentTool) Execute(ctx context.Context, args Args) Outcome {
	req := clinic.BookAppointmentRequest{
		PatientID:        args.String("patient_id"),
		AppointmentType:  args.String("appointment_type"),
		PractitionerName: args.String("practitioner_name"),
		AppointmentDate:  args.String("appointment_date"),
		AppointmentTime:  args.String("appointment_time"),
		Notes:            args.String("notes"),
	}
	log.Printf("Booking appointment for patient %s: %s with %s on %s at %s",
		req.PatientID, req.AppointmentType, req.PractitionerName, req.AppointmentDate, req.AppointmentTime)

	appointment, err := t.api.BookAppointment(ctx, req)
	if err != nil {
		return Failed("Sorry, I couldn't book the appointment right now. Please try again later.", executionError("bookAppointment", err))
	}
	return Ok(fmt.Sprintf("Appointment booked successfully! %s. Appointment ID: %s",
		clinic.FormatAppointment(*appointment, t.loc), appointment.AppointmentID))
}

// CancelAppointmentTool cancels an existing appointment.
type CancelAppointmentTool struct {
	api *clinic.Client
}

var _ ToolExecutor = (*CancelAppointmentTool)(nil)

func NewCancelAppointmentTool(api *clinic.Client) *CancelAppointmentTool {
	return &CancelAppointmentTool{api: api}
}

func (t *CancelAppointmentTool) Definition() Tool {
	return NewFunctionTool(
		"cancelAppointment",
		"Cancel an existing appointment",
		ObjectSchema(map[string]*JSONSchema{
			"appointment_id": {Type: "string", Description: "Appointment ID to cancel"},
			"reason":         {Type: "string", Description: "Reason for cancellation"},
		}, "appointment_id"),
	)
}

func (t *CancelAppointmentTool) Execute(ctx context.Context, args Args) Outcome {
	id := args.String("appointment_id")
	log.Printf("Cancelling appointment %s", id)

	if err := t.api.CancelAppointment(ctx, id, args.String("reason")); err != nil {
		return Failed("Sorry, I couldn't cancel the appointment right now. Please try again later.", executionError("cancelAppointment", err))
	}
	return Ok(fmt.Sprintf("Appointment %s has been cancelled successfully.", id))
}

// PatientAppointmentsTool reads out a patient's upcoming appointments.
type PatientAppointmentsTool struct {
	api *clinic.Client
	loc *time.Location
}

var _ ToolExecutor = (*PatientAppointmentsTool)(nil)

func NewPatientAppointmentsTool(api *clinic.Client, loc *time.Location) *PatientAppointmentsTool {
	return &PatientAppointmentsTool{api: api, loc: loc}
}

func (t *PatientAppointmentsTool) Definition() Tool {
	return NewFunctionTool(
		"getPatientAppointments",
		"Get upcoming appointments for a patient",
		ObjectSchema(map[string]*JSONSchema{
			"patient_id": {Type: "string", Description: "Patient ID"},
			"limit": {
				Type:        "integer",
				Minimum:     &minAppointmentLimit,
				Description: fmt.Sprintf("Number of appointments to return (default: %d)", DefaultAppointmentLimit),
				Default:     DefaultAppointmentLimit,
			},
		}, "patient_id"),
	)
}

func (t *PatientAppointmentsTool) Execute(ctx context.Context, args Args) Outcome {
	patientID := args.String("patient_id")
	log.Printf("Getting appointments for patient %s", patientID)

	appointments, err := t.api.PatientAppointments(ctx, patientID, args.Int("limit"))
	if err != nil {
		return Failed("Sorry, I couldn't retrieve the appointments right now. Please try again later.", executionError("getPatientAppointments", err))
	}
	if len(appointments) == 0 {
		return Ok("No upcoming appointments found for this patient.")
	}
	return Ok("Upcoming appointments: " + clinic.FormatAppointments(appointments, t.loc))
}

// In file: internal/clinic/models.go

// Package clinic is the client for the clinic scheduling REST API, plus the
// clinic profile (services, practitioners, hours) and the voice formatting
// of appointments.
//
// The API is the sole authority over patients and appointments. This package
// only forwards requests and reshapes responses.
package clinic

// AvailabilityQuery is the query for GET /availability.
type AvailabilityQuery struct {
	Date             string
	AppointmentType  string
	PractitionerName string
}

// AvailabilitySlot is one open slot returned by the API.
type AvailabilitySlot struct {
	Time             string `json:"time"`
	PractitionerName string `json:"practitioner_name"`
}

// AvailabilityResponse is the body of GET /availability.
type AvailabilityResponse struct {
	AvailableSlots []AvailabilitySlot `json:"available_slots"`
}

// VerifyPatientRequest is the body of POST /patients/verify.
type VerifyPatientRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone,omitempty"`
}

// VerifyPatientResponse is the body returned by POST /patients/verify.
type VerifyPatientResponse struct {
	PatientExists bool   `json:"patient_exists"`
	PatientID     string `json:"patient_id"`
}

// CreatePatientRequest is the body of POST /patients.
type CreatePatientRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
}

// CreatePatientResponse is the body returned by POST /patients.
type CreatePatientResponse struct {
	PatientID string `json:"patient_id"`
}

// BookAppointmentRequest is the body of POST /appointments.
type BookAppointmentRequest struct {
	PatientID        string `json:"patient_id"`
	AppointmentType  string `json:"appointment_type"`
	PractitionerName string `json:"practitioner_name"`
	AppointmentDate  string `json:"appointment_date"`
	AppointmentTime  string `json:"appointment_time"`
	Notes            string `json:"notes,omitempty"`
}

// Appointment is an appointment as the API returns it. AppointmentTime is an
// RFC 3339 timestamp.
type Appointment struct {
	AppointmentID    string `json:"appointment_id"`
	AppointmentType  string `json:"appointment_type"`
	PractitionerName string `json:"practitioner_name"`
	AppointmentTime  string `json:"appointment_time"`
}

// CancelAppointmentRequest is the body of DELETE /appointments/{id}.
type CancelAppointmentRequest struct {
	Reason string `json:"reason,omitempty"`
}

// PatientAppointmentsResponse is the body of GET /patients/{id}/appointments.
type PatientAppointmentsResponse struct {
	Appointments []Appointment `json:"appointments"`
}

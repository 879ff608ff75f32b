// In file: internal/tools/patient_tools.go
package tools

import (
	"context"
	"fmt"
	"log"

	"github.com/dileep-u-k/voice-tool-gateway/internal/clinic"
)

// patientIdentity is the schema fragment shared by the patient tools.
func patientIdentity() map[string]*JSONSchema {
	return map[string]*JSONSchema{
		"first_name":    {Type: "string", Description: "Patient first name"},
		"last_name":     {Type: "string", Description: "Patient last name"},
		"date_of_birth": {Type: "string", Description: "Patient date of birth in YYYY-MM-DD format"},
	}
}

// VerifyPatientTool checks whether a caller is a known patient.
type VerifyPatientTool struct {
	api *clinic.Client
}

var _ ToolExecutor = (*VerifyPatientTool)(nil)

func NewVerifyPatientTool(api *clinic.Client) *VerifyPatientTool {
	return &VerifyPatientTool{api: api}
}

func (t *VerifyPatientTool) Definition() Tool {
	props := patientIdentity()
	props["phone"] = &JSONSchema{Type: "string", Description: "Patient phone number"}
	return NewFunctionTool(
		"verifyPatient",
		"Verify if a patient exists in the system",
		ObjectSchema(props, "first_name", "last_name", "date_of_birth"),
	)
}

func (t *VerifyPatientTool) Execute(ctx context.Context, args Args) Outcome {
	req := clinic.VerifyPatientRequest{
		FirstName:   args.String("first_name"),
		LastName:    args.String("last_name"),
		DateOfBirth: args.String("date_of_birth"),
		Phone:       args.String("phone"),
	}
	log.Printf("Verifying patient: %s %s, DOB: %s", req.FirstName, req.LastName, req.DateOfBirth)

	result, err := t.api.VerifyPatient(ctx, req)
	if err != nil {
		return Failed("Sorry, I couldn't verify the patient information right now. Please try again later.", executionError("verifyPatient", err))
	}
	if !result.PatientExists {
		return Ok(fmt.Sprintf("Patient not found. Would you like me to create a new patient record for %s %s?", req.FirstName, req.LastName))
	}
	return Ok(fmt.Sprintf("Patient verified: %s %s. Patient ID: %s", req.FirstName, req.LastName, result.PatientID))
}

// CreatePatientTool registers a new patient.
type CreatePatientTool struct {
	api *clinic.Client
}

var _ ToolExecutor = (*CreatePatientTool)(nil)

func NewCreatePatientTool(api *clinic.Client) *CreatePatientTool {
	return &CreatePatientTool{api: api}
}

func (t *CreatePatientTool) Definition() Tool {
	props := patientIdentity()
	props["phone"] = &JSONSchema{Type: "string", Description: "Patient phone number"}
	props["email"] = &JSONSchema{Type: "string", Description: "Patient email address"}
	props["address"] = &JSONSchema{Type: "string", Description: "Patient address"}
	return NewFunctionTool(
		"createPatient",
		"Create a new patient in the system",
		ObjectSchema(props, "first_name", "last_name", "date_of_birth", "phone"),
	)
}

func (t *CreatePatientTool) Execute(ctx context.Context, args Args) Outcome {
	req := clinic.CreatePatientRequest{
		FirstName:   args.String("first_name"),
		LastName:    args.String("last_name"),
		DateOfBirth: args.String("date_of_birth"),
		Phone:       args.String("phone"),
		Email:       args.String("email"),
		Address:     args.String("address"),
	}
	log.Printf("Creating new patient: %s %s", req.FirstName, req.LastName)

	result, err := t.api.CreatePatient(ctx, req)
	if err != nil {
		return Failed("Sorry, I couldn't create the patient record right now. Please try again later.", executionError("createPatient", err))
	}
	return Ok(fmt.Sprintf("New patient created successfully: %s %s. Patient ID: %s", req.FirstName, req.LastName, result.PatientID))
}

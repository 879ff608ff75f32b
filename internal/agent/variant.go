// In file: internal/agent/variant.go

// Package agent drives a spoken conversation: it owns the per-session
// history, asks the language model for the next step and dispatches the tool
// calls the model requests to the variant's catalogue.
package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/dileep-u-k/voice-tool-gateway/internal/clinic"
	"github.com/dileep-u-k/voice-tool-gateway/internal/tools"
)

const (
	VariantWeather = "weather"
	VariantClinic  = "clinic"
)

const weatherSystemPrompt = "You are a voice assistant created by LiveKit. Your interface with users will be voice. " +
	"You should use short and concise responses, and avoiding usage of unpronounceable punctuation."

const weatherGreeting = "Hey, how can I help you today"

// Variant is one deployable assistant: its instructions, its opening line and
// the tools it may call.
type Variant struct {
	Name          string
	AssistantName string
	SystemPrompt  string
	Greeting      string
	Catalogue     *tools.ToolManager
}

// NewWeatherVariant is the general voice assistant with a weather lookup.
func NewWeatherVariant(weatherBaseURL string, timeout time.Duration) (*Variant, error) {
	catalogue, err := tools.NewWeatherCatalogue(weatherBaseURL, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather catalogue: %w", err)
	}
	return &Variant{
		Name:          VariantWeather,
		AssistantName: "assistant",
		SystemPrompt:  weatherSystemPrompt,
		Greeting:      weatherGreeting,
		Catalogue:     catalogue,
	}, nil
}

// NewClinicVariant is the scheduling assistant for the clinic described by
// profile, backed by the booking API behind api.
func NewClinicVariant(api *clinic.Client, profile clinic.Profile) (*Variant, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	loc, err := profile.TimeLocation()
	if err != nil {
		return nil, fmt.Errorf("failed to load clinic timezone: %w", err)
	}
	catalogue, err := tools.NewClinicCatalogue(api, profile, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to build clinic catalogue: %w", err)
	}
	return &Variant{
		Name:          VariantClinic,
		AssistantName: profile.AssistantName,
		SystemPrompt:  ClinicSystemPrompt(profile),
		Greeting:      ClinicGreeting(profile),
		Catalogue:     catalogue,
	}, nil
}

// ClinicGreeting is the line the clinic assistant opens every call with.
func ClinicGreeting(profile clinic.Profile) string {
	return fmt.Sprintf("Hello! I'm %s, your healthcare scheduling assistant at %s. "+
		"I can help you book appointments, check availability, and manage your existing appointments. "+
		"How can I assist you today?", profile.AssistantName, profile.ClinicName)
}

// ClinicSystemPrompt renders the scheduling instructions for a clinic.
func ClinicSystemPrompt(profile clinic.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a professional healthcare scheduling assistant for %s.\n\n", profile.AssistantName, profile.ClinicName)

	b.WriteString("Your role is to help patients:\n")
	b.WriteString("- Schedule appointments for " + serviceFamilies(profile) + "\n")
	b.WriteString("- Manage existing appointments (cancel, reschedule)\n")
	b.WriteString("- Provide information about services and practitioners\n")
	b.WriteString("- Handle patient registration and verification\n\n")

	b.WriteString("Communication style:\n")
	b.WriteString("- Professional but warm and friendly\n")
	b.WriteString("- Clear and concise for voice interaction\n")
	b.WriteString("- Empathetic and understanding of patient needs\n")
	b.WriteString("- Always confirm details before booking\n\n")

	b.WriteString("Available services:\n")
	for _, t := range profile.AppointmentTypes {
		fmt.Fprintf(&b, "- %s (%d min)", t.Name, t.DurationMinutes)
		if len(t.Practitioners) > 0 {
			b.WriteString(" - " + strings.Join(t.Practitioners, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Business hours: %s\n", strings.Join(profile.BusinessHours, ", "))
	fmt.Fprintf(&b, "Location: %s\n", profile.Location)
	fmt.Fprintf(&b, "Timezone: %s\n\n", profile.Timezone)

	b.WriteString("Always use the function tools to check availability, create appointments, and manage patient data.\n")
	b.WriteString("Confirm all appointment details before finalizing bookings.")
	return b.String()
}

// serviceFamilies strips the Initial/Follow-up suffixes and joins the
// distinct service names, e.g. "Chiropractic, Physiotherapy, and Remedial Massage".
func serviceFamilies(profile clinic.Profile) string {
	var families []string
	seen := make(map[string]bool)
	for _, t := range profile.AppointmentTypes {
		name := t.Name
		for _, suffix := range []string{" Initial", " Follow-up"} {
			name = strings.TrimSuffix(name, suffix)
		}
		if !seen[name] {
			seen[name] = true
			families = append(families, name)
		}
	}
	switch len(families) {
	case 0:
		return "our services"
	case 1:
		return families[0]
	case 2:
		return families[0] + " and " + families[1]
	}
	return strings.Join(families[:len(families)-1], ", ") + ", and " + families[len(families)-1]
}

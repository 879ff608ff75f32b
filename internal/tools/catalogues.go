// In file: internal/tools/catalogues.go
package tools

import (
	"strings"
	"time"

	"github.com/dileep-u-k/voice-tool-gateway/internal/clinic"
)

// NewWeatherCatalogue holds the single weather tool.
func NewWeatherCatalogue(weatherBaseURL string, timeout time.Duration) (*ToolManager, error) {
	manager := NewToolManager()
	if err := manager.Register(NewWeatherTool(weatherBaseURL, timeout)); err != nil {
		return nil, err
	}
	return manager, nil
}

// NewClinicCatalogue holds the scheduling tools for one clinic.
func NewClinicCatalogue(api *clinic.Client, profile clinic.Profile, loc *time.Location) (*ToolManager, error) {
	manager := NewToolManager()
	for _, tool := range []ToolExecutor{
		NewCurrentTimeTool(loc, PlaceName(loc)),
		NewAppointmentTypesTool(profile),
		NewPractitionersTool(profile),
		NewCheckAvailabilityTool(api),
		NewVerifyPatientTool(api),
		NewCreatePatientTool(api),
		NewBookAppointmentTool(api, loc),
		NewCancelAppointmentTool(api),
		NewPatientAppointmentsTool(api, loc),
	} {
		if err := manager.Register(tool); err != nil {
			return nil, err
		}
	}
	return manager, nil
}

// PlaceName turns "Australia/Brisbane" into "Brisbane".
func PlaceName(loc *time.Location) string {
	name := loc.String()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.ReplaceAll(name, "_", " ")
}

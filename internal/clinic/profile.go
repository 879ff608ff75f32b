// In file: internal/clinic/profile.go
package clinic

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// AppointmentType is a bookable service and its length.
type AppointmentType struct {
	Name            string   `yaml:"name"`
	DurationMinutes int      `yaml:"duration_minutes"`
	Practitioners   []string `yaml:"practitioners"`
}

// Practitioner is a clinician and what they practise.
type Practitioner struct {
	Name      string `yaml:"name"`
	Specialty string `yaml:"specialty"`
}

// Profile is the static description of a clinic that the assistant speaks
// about. It is loaded once at startup.
type Profile struct {
	AssistantName    string            `yaml:"assistant_name"`
	ClinicName       string            `yaml:"clinic_name"`
	Location         string            `yaml:"location"`
	Timezone         string            `yaml:"timezone"`
	BusinessHours    []string          `yaml:"business_hours"`
	AppointmentTypes []AppointmentType `yaml:"appointment_types"`
	Practitioners    []Practitioner    `yaml:"practitioners"`
}

// DefaultProfile describes Noosa Springs Chiropractic.
func DefaultProfile() Profile {
	return Profile{
		AssistantName: "Cleo",
		ClinicName:    "Noosa Springs Chiropractic",
		Location:      "Noosa Springs, Queensland, Australia",
		Timezone:      "Australia/Brisbane",
		BusinessHours: []string{
			"Monday-Friday 8:00 AM - 6:00 PM",
			"Saturday 8:00 AM - 2:00 PM",
		},
		AppointmentTypes: []AppointmentType{
			{Name: "Chiropractic Initial", DurationMinutes: 45, Practitioners: []string{"Dr. Michael Coolican", "Jenny Jones"}},
			{Name: "Chiropractic Follow-up", DurationMinutes: 30, Practitioners: []string{"Dr. Michael Coolican", "Jenny Jones"}},
			{Name: "Physiotherapy Initial", DurationMinutes: 60, Practitioners: []string{"Rich Low"}},
			{Name: "Physiotherapy Follow-up", DurationMinutes: 45, Practitioners: []string{"Rich Low"}},
			{Name: "Remedial Massage Initial", DurationMinutes: 60, Practitioners: []string{"Dr. Michael Coolican"}},
		},
		Practitioners: []Practitioner{
			{Name: "Rich Low", Specialty: "Physiotherapy"},
			{Name: "Dr. Michael Coolican", Specialty: "Chiropractic and Remedial Massage"},
			{Name: "Jenny Jones", Specialty: "Chiropractic"},
		},
	}
}

// LoadProfile reads a YAML profile. Fields missing from the file keep the
// values of DefaultProfile.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read clinic profile %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("failed to parse clinic profile %s: %w", path, err)
	}
	if err := profile.Validate(); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// Validate checks that the profile can drive an assistant.
func (p Profile) Validate() error {
	if p.AssistantName == "" || p.ClinicName == "" {
		return fmt.Errorf("clinic profile: assistant_name and clinic_name are required")
	}
	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return fmt.Errorf("clinic profile: invalid timezone %q: %w", p.Timezone, err)
	}
	for _, t := range p.AppointmentTypes {
		if t.Name == "" || t.DurationMinutes <= 0 {
			return fmt.Errorf("clinic profile: appointment type %q needs a name and a positive duration", t.Name)
		}
	}
	return nil
}

// TimeLocation loads the profile's timezone.
func (p Profile) TimeLocation() (*time.Location, error) {
	return time.LoadLocation(p.Timezone)
}

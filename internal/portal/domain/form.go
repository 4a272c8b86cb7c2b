package domain

import (
	"fmt"
	"strings"
	"time"
)

// FormType enumerates the four form kinds the portal supports. The set
// is closed: every switch over it handles all four members, so adding a
// fifth kind is a compile-surface change, not a runtime lookup miss.
type FormType string

const (
	FormDailyLog           FormType = "daily-log"
	FormVehicleInspection  FormType = "vehicle-inspection"
	FormSafetyMeeting      FormType = "safety-meeting"
	FormScaffoldInspection FormType = "scaffold-inspection"
)

// AllFormTypes returns the form kinds in their canonical scan order.
func AllFormTypes() []FormType {
	return []FormType{
		FormScaffoldInspection,
		FormDailyLog,
		FormVehicleInspection,
		FormSafetyMeeting,
	}
}

// ParseFormType validates a URL path segment as a form kind.
func ParseFormType(s string) (FormType, error) {
	switch FormType(s) {
	case FormDailyLog, FormVehicleInspection, FormSafetyMeeting, FormScaffoldInspection:
		return FormType(s), nil
	}
	return "", fmt.Errorf("invalid form type %q", s)
}

// Label returns the human-facing name used in exports and listings.
func (t FormType) Label() string {
	switch t {
	case FormDailyLog:
		return "Daily Log"
	case FormVehicleInspection:
		return "Vehicle Inspection"
	case FormSafetyMeeting:
		return "Safety Meeting"
	case FormScaffoldInspection:
		return "Scaffold Inspection"
	}
	return string(t)
}

type FormStatus string

const (
	StatusDraft     FormStatus = "draft"
	StatusCompleted FormStatus = "completed"
)

// Attendee is a sign-off entry on safety meetings, vehicle inspections
// (where Role is required) and scaffold inspections (as "inspectors").
type Attendee struct {
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`      // vehicle inspections only: driver|mechanic
	Signature string `json:"signature,omitempty"` // data-URI encoded image blob
}

// DailyLog captures the end-of-day site report.
type DailyLog struct {
	Date                 *time.Time `json:"date,omitempty"`
	Job                  string     `json:"job,omitempty"`
	JobAddress           string     `json:"jobAddress,omitempty"`
	PersonInCharge       string     `json:"personInCharge,omitempty"`
	PersonCompletingLog  string     `json:"personCompletingLog,omitempty"`
	Weather              string     `json:"weather,omitempty"`
	BackchargesTo        string     `json:"backchargesTo,omitempty"`
	BCDescription        string     `json:"bcDescription,omitempty"`
	EquipmentUsed        string     `json:"equipmentUsed,omitempty"`
	SubcontractorsOnsite string     `json:"subcontractorsOnsite,omitempty"`
	DailyReport          string     `json:"dailyReport,omitempty"`
	ChangeOrders         string     `json:"changeOrders,omitempty"`
}

// VehicleInspection is the pre-trip checklist. The three item maps hold
// per-component condition marks ("ok", "us" or "none").
type VehicleInspection struct {
	OperatorName              string            `json:"operatorName,omitempty"`
	Date                      *time.Time        `json:"date,omitempty"`
	Time                      string            `json:"time,omitempty"`
	OdometerReading           *float64          `json:"odometerReading,omitempty"`
	VehicleNumber             string            `json:"vehicleNumber,omitempty"`
	JobName                   string            `json:"jobName,omitempty"`
	JobAddress                string            `json:"jobAddress,omitempty"`
	TractorItems              map[string]string `json:"tractorItems,omitempty"`
	EquipmentItems            map[string]string `json:"equipmentItems,omitempty"`
	TrailerItems              map[string]string `json:"trailerItems,omitempty"`
	TractorOtherDetail        string            `json:"tractorOtherDetail,omitempty"`
	EquipmentOtherDetail      string            `json:"equipmentOtherDetail,omitempty"`
	TrailerOtherDetail        string            `json:"trailerOtherDetail,omitempty"`
	TrailerUnitDescription    string            `json:"trailerUnitDescription,omitempty"`
	Remarks                   string            `json:"remarks,omitempty"`
	VehicleSatisfactory       bool              `json:"vehicleSatisfactory"`
	DefectsCorrected          bool              `json:"defectsCorrected"`
	DefectsNeedNotBeCorrected bool              `json:"defectsNeedNotBeCorrected"`
	Attendees                 []Attendee        `json:"attendees,omitempty"`
}

// SafetyMeeting records a toolbox talk and who attended.
type SafetyMeeting struct {
	Date            *time.Time `json:"date,omitempty"`
	JobName         string     `json:"jobName,omitempty"`
	JobAddress      string     `json:"jobAddress,omitempty"`
	Topic           string     `json:"topic,omitempty"`
	Recommendations string     `json:"recommendations,omitempty"`
	Attendees       []Attendee `json:"attendees,omitempty"`
}

// ChecklistItem is one scaffold checklist row with up to seven daily
// responses; nil means the day was not inspected.
type ChecklistItem struct {
	Description string  `json:"description"`
	Responses   []*bool `json:"responses"`
}

// WeatherConditions describes one day of the scaffold inspection period.
type WeatherConditions struct {
	Sunny      bool   `json:"Sunny"`
	Cloudy     bool   `json:"Cloudy"`
	Windy      bool   `json:"Windy"`
	SnowInches string `json:"snowInches"`
	RainInches string `json:"rainInches"`
}

// ScaffoldInspection covers a 7-day scaffold inspection period.
type ScaffoldInspection struct {
	Inspector         string              `json:"inspector,omitempty"`
	JobName           string              `json:"jobName,omitempty"`
	SiteAddress       string              `json:"siteAddress,omitempty"`
	SiteRep           string              `json:"siteRep,omitempty"`
	GeneralContractor string              `json:"generalContractor,omitempty"`
	GCPhone           string              `json:"gcPhone,omitempty"`
	DateFrom          *time.Time          `json:"dateFrom,omitempty"`
	DateTo            *time.Time          `json:"dateTo,omitempty"`
	InspectionItems   []ChecklistItem     `json:"inspectionItems,omitempty"`
	InspectionTimes   []string            `json:"inspectionTimes,omitempty"`
	InspectionWeather []WeatherConditions `json:"inspectionWeather,omitempty"`
	ActionComment     string              `json:"actionComment,omitempty"`
	Inspectors        []Attendee          `json:"inspectors,omitempty"`
}

// Form is the stored envelope plus exactly one populated payload
// matching Type.
type Form struct {
	ID              string
	Type            FormType
	Status          FormStatus
	CompletedByUser string // user ID, set when the form was completed by an authenticated user
	CompletedByName string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	DailyLog           *DailyLog
	VehicleInspection  *VehicleInspection
	SafetyMeeting      *SafetyMeeting
	ScaffoldInspection *ScaffoldInspection
}

// JobSiteKey returns the (job name, address) pair this form contributes
// to the job-site aggregation, or ok=false when it carries no address.
func (f *Form) JobSiteKey() (jobName, address string, ok bool) {
	switch f.Type {
	case FormDailyLog:
		jobName, address = f.DailyLog.Job, f.DailyLog.JobAddress
	case FormVehicleInspection:
		jobName, address = f.VehicleInspection.JobName, f.VehicleInspection.JobAddress
	case FormSafetyMeeting:
		jobName, address = f.SafetyMeeting.JobName, f.SafetyMeeting.JobAddress
	case FormScaffoldInspection:
		jobName, address = f.ScaffoldInspection.JobName, f.ScaffoldInspection.SiteAddress
	}
	if strings.TrimSpace(address) == "" {
		return "", "", false
	}
	return jobName, address, true
}

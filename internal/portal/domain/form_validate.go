package domain

import "strings"

// Validate enforces the required-for-completion rules. Drafts may be
// arbitrarily incomplete; a completed form must carry every required
// field plus at least one named attendee/inspector where the kind asks
// for sign-offs.
func (f *Form) Validate() error {
	switch f.Status {
	case StatusDraft, StatusCompleted:
	default:
		return Validationf("invalid status %q", f.Status)
	}

	switch f.Type {
	case FormDailyLog:
		return f.DailyLog.validate(f.Status)
	case FormVehicleInspection:
		return f.VehicleInspection.validate(f.Status)
	case FormSafetyMeeting:
		return f.SafetyMeeting.validate(f.Status)
	case FormScaffoldInspection:
		return f.ScaffoldInspection.validate(f.Status)
	}
	return Validationf("invalid form type %q", f.Type)
}

func (d *DailyLog) validate(status FormStatus) error {
	if status != StatusCompleted {
		return nil
	}
	switch {
	case d.Date == nil:
		return Validationf("date is required")
	case strings.TrimSpace(d.Job) == "":
		return Validationf("job is required")
	case strings.TrimSpace(d.PersonInCharge) == "":
		return Validationf("personInCharge is required")
	case strings.TrimSpace(d.PersonCompletingLog) == "":
		return Validationf("personCompletingLog is required")
	case strings.TrimSpace(d.DailyReport) == "":
		return Validationf("dailyReport is required")
	}
	return nil
}

func (v *VehicleInspection) validate(status FormStatus) error {
	// Roles are constrained even on drafts; a half-filled inspection
	// still may not invent a third attendee kind.
	for _, a := range v.Attendees {
		if a.Role != "driver" && a.Role != "mechanic" {
			return Validationf("attendee role must be driver or mechanic")
		}
	}

	if status != StatusCompleted {
		return nil
	}
	switch {
	case strings.TrimSpace(v.OperatorName) == "":
		return Validationf("operatorName is required")
	case v.Date == nil:
		return Validationf("date is required")
	case strings.TrimSpace(v.Time) == "":
		return Validationf("time is required")
	case v.OdometerReading == nil:
		return Validationf("odometerReading is required")
	case strings.TrimSpace(v.VehicleNumber) == "":
		return Validationf("vehicleNumber is required")
	}
	if err := requireNamed(v.Attendees, "attendee"); err != nil {
		return err
	}
	return nil
}

func (s *SafetyMeeting) validate(status FormStatus) error {
	if status != StatusCompleted {
		return nil
	}
	switch {
	case s.Date == nil:
		return Validationf("date is required")
	case strings.TrimSpace(s.JobName) == "":
		return Validationf("jobName is required")
	case strings.TrimSpace(s.Topic) == "":
		return Validationf("topic is required")
	}
	return requireNamed(s.Attendees, "attendee")
}

func (s *ScaffoldInspection) validate(status FormStatus) error {
	if status != StatusCompleted {
		return nil
	}
	switch {
	case strings.TrimSpace(s.Inspector) == "":
		return Validationf("inspector is required")
	case strings.TrimSpace(s.JobName) == "":
		return Validationf("jobName is required")
	case strings.TrimSpace(s.SiteAddress) == "":
		return Validationf("siteAddress is required")
	case strings.TrimSpace(s.SiteRep) == "":
		return Validationf("siteRep is required")
	case s.DateFrom == nil:
		return Validationf("dateFrom is required")
	case s.DateTo == nil:
		return Validationf("dateTo is required")
	}
	return requireNamed(s.Inspectors, "inspector")
}

// requireNamed checks that the sign-off list has at least one entry and
// that every entry carries a non-empty name.
func requireNamed(list []Attendee, what string) error {
	if len(list) == 0 {
		return Validationf("at least one %s with a name is required", what)
	}
	for _, a := range list {
		if strings.TrimSpace(a.Name) == "" {
			return Validationf("every %s must have a name", what)
		}
	}
	return nil
}

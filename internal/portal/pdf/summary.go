package pdf

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/stuccorite/fieldforms/internal/portal/domain"
)

// RenderSummary produces a compact text-only export through the simple
// emitter: every field on one page as labeled lines, no images. Crews
// use it for quick printouts where the styled document is overkill.
func RenderSummary(f *domain.Form) ([]byte, error) {
	var lines []string
	switch f.Type {
	case domain.FormDailyLog:
		lines = dailyLogSummary(f.DailyLog)
	case domain.FormVehicleInspection:
		lines = vehicleInspectionSummary(f.VehicleInspection)
	case domain.FormSafetyMeeting:
		lines = safetyMeetingSummary(f.SafetyMeeting)
	case domain.FormScaffoldInspection:
		lines = scaffoldInspectionSummary(f.ScaffoldInspection)
	default:
		return nil, fmt.Errorf("pdf: no summary for form type %q", f.Type)
	}

	var buf bytes.Buffer
	if err := WriteSimple(&buf, f.Type.Label(), lines); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func dailyLogSummary(d *domain.DailyLog) []string {
	return []string{
		"Job: " + orNA(d.Job),
		"Date: " + formatDate(d.Date),
		"Person in Charge: " + orNA(d.PersonInCharge),
		"Completed By: " + orNA(d.PersonCompletingLog),
		"Weather: " + orNA(d.Weather),
		"Backcharges To: " + orNA(d.BackchargesTo),
		"BC Description: " + orNA(d.BCDescription),
		"Equipment Used: " + orNA(d.EquipmentUsed),
		"Subcontractors Onsite: " + orNA(d.SubcontractorsOnsite),
		sectionLine("Daily Report"),
		orNA(d.DailyReport),
		"Change Orders: " + orNA(d.ChangeOrders),
	}
}

func vehicleInspectionSummary(v *domain.VehicleInspection) []string {
	lines := []string{
		"Operator Name: " + orNA(v.OperatorName),
		"Date: " + formatDate(v.Date),
		"Time: " + orNA(v.Time),
		"Vehicle Number: " + orNA(v.VehicleNumber),
		"Odometer: " + formatOdometer(v.OdometerReading),
		"Vehicle Satisfactory: " + yesNo(v.VehicleSatisfactory),
		"Defects Corrected: " + yesNo(v.DefectsCorrected),
		"Defects Need Not Be Corrected: " + yesNo(v.DefectsNeedNotBeCorrected),
		sectionLine("Tractor Inspection"),
	}
	lines = append(lines, itemMapSummary(v.TractorItems)...)
	lines = append(lines, sectionLine("Equipment Inspection"))
	lines = append(lines, itemMapSummary(v.EquipmentItems)...)
	lines = append(lines, sectionLine("Trailer Inspection"))
	lines = append(lines, itemMapSummary(v.TrailerItems)...)
	lines = append(lines,
		"Trailer Unit Description: "+orNA(v.TrailerUnitDescription),
		"Remarks: "+orNA(v.Remarks),
	)
	return append(lines, attendeesSummary(v.Attendees, "Sign-offs")...)
}

func safetyMeetingSummary(s *domain.SafetyMeeting) []string {
	lines := []string{
		"Job Name: " + orNA(s.JobName),
		"Date: " + formatDate(s.Date),
		"Topic: " + orNA(s.Topic),
		"Recommendations: " + orNA(s.Recommendations),
	}
	return append(lines, attendeesSummary(s.Attendees, "Attendees")...)
}

func scaffoldInspectionSummary(s *domain.ScaffoldInspection) []string {
	comment := s.ActionComment
	if comment == "" {
		comment = "No action comments recorded."
	}
	lines := []string{
		"Inspector: " + orNA(s.Inspector),
		"Job Name: " + orNA(s.JobName),
		"Site Address: " + orNA(s.SiteAddress),
		"Site Rep: " + orNA(s.SiteRep),
		"General Contractor: " + orNA(s.GeneralContractor),
		"GC Phone: " + orNA(s.GCPhone),
		"Date From: " + formatDate(s.DateFrom),
		"Date To: " + formatDate(s.DateTo),
		sectionLine("Inspection Notes"),
		comment,
	}
	return append(lines, attendeesSummary(s.Inspectors, "Inspectors")...)
}

func itemMapSummary(items map[string]string) []string {
	if len(items) == 0 {
		return []string{"Items: No data"}
	}
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(items)+1)
	lines = append(lines, "Items")
	for _, k := range keys {
		lines = append(lines, "  * "+k+": "+orNA(items[k]))
	}
	return lines
}

func attendeesSummary(list []domain.Attendee, descriptor string) []string {
	if len(list) == 0 {
		return []string{descriptor + ": None recorded"}
	}
	lines := make([]string, 0, len(list)+1)
	lines = append(lines, descriptor)
	for i, a := range list {
		entry := a.Name
		if entry == "" {
			entry = "Name missing"
		}
		if a.Role != "" {
			entry += ", Role: " + a.Role
		}
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, entry))
	}
	return lines
}

func sectionLine(title string) string {
	return "-- " + title + " --"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

package pdf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/stuccorite/fieldforms/internal/portal/domain"
)

// Render produces the export document for a form. Layout, section
// order and fallback text are part of the user-facing contract: crews
// file these PDFs with clients and the sheets must look the same from
// one export to the next.
func Render(f *domain.Form, generated time.Time) ([]byte, error) {
	switch f.Type {
	case domain.FormDailyLog:
		return renderDailyLog(f.DailyLog, generated), nil
	case domain.FormVehicleInspection:
		return renderVehicleInspection(f.VehicleInspection, generated), nil
	case domain.FormSafetyMeeting:
		return renderSafetyMeeting(f.SafetyMeeting, generated), nil
	case domain.FormScaffoldInspection:
		return renderScaffoldInspection(f.ScaffoldInspection, generated), nil
	}
	return nil, fmt.Errorf("pdf: no renderer for form type %q", f.Type)
}

func renderDailyLog(d *domain.DailyLog, generated time.Time) []byte {
	doc, f := start("DAILY LOG", generated)

	f.sectionHeader("Basic Information")
	f.field("Date: ", formatDate(d.Date))
	f.field("Job: ", d.Job)
	f.field("Person in Charge: ", d.PersonInCharge)
	f.field("Completed By: ", d.PersonCompletingLog)
	f.field("Weather: ", d.Weather)
	f.y += 10

	f.sectionHeader("Backcharges")
	f.field("Backcharges To: ", d.BackchargesTo)
	f.textArea("BC Description:", d.BCDescription)
	f.y += 10

	f.sectionHeader("Equipment & Subcontractors")
	f.textArea("Equipment Used:", d.EquipmentUsed)
	f.textArea("Subcontractors Onsite:", d.SubcontractorsOnsite)
	f.y += 10

	f.breakIf(680)
	f.sectionHeader("Daily Report")
	f.textArea("Report:", d.DailyReport)
	f.y += 10

	f.breakIf(680)
	f.sectionHeader("Change Orders")
	f.textArea("Change Orders:", d.ChangeOrders)

	return doc.Bytes()
}

func renderVehicleInspection(v *domain.VehicleInspection, generated time.Time) []byte {
	doc, f := start("VEHICLE INSPECTION", generated)

	f.sectionHeader("Inspection Details")
	f.field("Operator Name: ", v.OperatorName)
	f.field("Date: ", formatDate(v.Date))
	f.field("Time: ", v.Time)
	f.field("Vehicle Number: ", v.VehicleNumber)
	f.field("Odometer Reading: ", formatOdometer(v.OdometerReading))
	f.y += 10

	f.sectionHeader("Vehicle Status")
	f.field("Vehicle Satisfactory: ", yesNo(v.VehicleSatisfactory))
	f.field("Defects Corrected: ", yesNo(v.DefectsCorrected))
	f.field("Defects Need Not Be Corrected: ", yesNo(v.DefectsNeedNotBeCorrected))
	f.y += 10

	f.itemMap("Tractor Inspection", v.TractorItems)
	f.itemMap("Equipment Inspection", v.EquipmentItems)
	f.itemMap("Trailer Inspection", v.TrailerItems)

	f.breakIf(680)
	f.sectionHeader("Additional Information")
	f.textArea("Trailer Unit Description:", v.TrailerUnitDescription)
	f.textArea("Remarks:", v.Remarks)

	f.signOffs("Sign-offs", v.Attendees, true)

	return doc.Bytes()
}

func renderSafetyMeeting(s *domain.SafetyMeeting, generated time.Time) []byte {
	doc, f := start("SAFETY MEETING", generated)

	f.sectionHeader("Meeting Details")
	f.field("Job Name: ", s.JobName)
	f.field("Date: ", formatDate(s.Date))
	f.textArea("Topic:", s.Topic)
	f.y += 10

	f.sectionHeader("Recommendations")
	f.textArea("Recommendations:", s.Recommendations)
	f.y += 10

	f.signOffs("Attendees", s.Attendees, false)

	return doc.Bytes()
}

func renderScaffoldInspection(s *domain.ScaffoldInspection, generated time.Time) []byte {
	doc, f := start("SCAFFOLD INSPECTION", generated)

	f.sectionHeader("Inspection Details")
	f.field("Inspector: ", s.Inspector)
	f.field("Job Name: ", s.JobName)
	f.field("Site Address: ", s.SiteAddress)
	f.field("Site Representative: ", s.SiteRep)
	f.field("General Contractor: ", s.GeneralContractor)
	f.field("GC Phone: ", s.GCPhone)
	f.field("Date From: ", formatDate(s.DateFrom))
	f.field("Date To: ", formatDate(s.DateTo))
	f.y += 10

	if len(s.InspectionItems) > 0 {
		f.breakIf(680)
		f.sectionHeader("Inspection Checklist (7-Day Period)")
		for i, item := range s.InspectionItems {
			f.breakIf(700)
			desc := item.Description
			if desc == "" {
				desc = "N/A"
			}
			f.doc.Text(marginLeft, f.y, HelveticaBold, 10, textColor,
				strconv.Itoa(i+1)+". "+desc)
			f.y += 15
			if len(item.Responses) > 0 {
				parts := make([]string, len(item.Responses))
				for day, r := range item.Responses {
					parts[day] = fmt.Sprintf("Day %d: %s", day+1, checklistMark(r))
				}
				f.doc.Text(marginLeft, f.y, Helvetica, 9, textColor,
					"   "+strings.Join(parts, " | "))
				f.y += 15
			}
			f.y += 5
		}
		f.y += 10
	}

	if len(s.InspectionTimes) > 0 {
		f.breakIf(680)
		f.sectionHeader("Daily Inspection Times")
		for i, t := range s.InspectionTimes {
			f.breakIf(720)
			f.field(fmt.Sprintf("Day %d: ", i+1), t)
		}
		f.y += 10
	}

	if len(s.InspectionWeather) > 0 {
		f.breakIf(680)
		f.sectionHeader("Weather Conditions")
		for i, w := range s.InspectionWeather {
			f.breakIf(720)
			f.field(fmt.Sprintf("Day %d: ", i+1), formatWeather(w))
		}
		f.y += 10
	}

	f.breakIf(680)
	f.sectionHeader("Action Comments")
	f.textArea("Comments:", s.ActionComment)
	f.y += 10

	f.signOffs("Inspectors", s.Inspectors, false)

	return doc.Bytes()
}

// itemMap renders one vehicle checklist map as a section of fields.
// Keys sort alphabetically so the same form always exports the same
// document.
func (f *flow) itemMap(title string, items map[string]string) {
	if len(items) == 0 {
		return
	}
	f.breakIf(680)
	f.sectionHeader(title)

	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		f.breakIf(720)
		f.field(k+": ", items[k])
	}
	f.y += 10
}

// signOffs renders a numbered attendee/inspector list with optional
// role lines and signature images.
func (f *flow) signOffs(title string, list []domain.Attendee, withRole bool) {
	if len(list) == 0 {
		return
	}
	f.breakIf(680)
	f.sectionHeader(title)

	for i, a := range list {
		f.breakIf(650)
		name := a.Name
		if name == "" {
			name = "N/A"
		}
		f.doc.Text(marginLeft, f.y, HelveticaBold, 10, textColor,
			strconv.Itoa(i+1)+". "+name)
		f.y += 15
		if withRole && a.Role != "" {
			f.doc.Text(marginLeft, f.y, Helvetica, 10, textColor, "   Role: "+a.Role)
			f.y += 15
		}
		if a.Signature != "" {
			f.signature(a.Signature)
		}
		f.y += 5
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func checklistMark(r *bool) string {
	if r != nil && *r {
		return "Yes"
	}
	return "N/A"
}

func formatOdometer(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// formatWeather summarizes one day of scaffold weather observations.
func formatWeather(w domain.WeatherConditions) string {
	var parts []string
	if w.Sunny {
		parts = append(parts, "Sunny")
	}
	if w.Cloudy {
		parts = append(parts, "Cloudy")
	}
	if w.Windy {
		parts = append(parts, "Windy")
	}
	if w.SnowInches != "" {
		parts = append(parts, "Snow: "+w.SnowInches+" in")
	}
	if w.RainInches != "" {
		parts = append(parts, "Rain: "+w.RainInches+" in")
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, ", ")
}

package domain

import (
	"encoding/json"
	"time"
)

// The wire shape of a form is flat: envelope fields and kind-specific
// fields side by side in one object, which is what the portal UI has
// always exchanged. Internally the envelope and the payload are split,
// so marshalling merges them and decoding reads both from the same
// bytes.

type formEnvelope struct {
	ID              string     `json:"id,omitempty"`
	Status          FormStatus `json:"status,omitempty"`
	CompletedByUser string     `json:"completedByUser,omitempty"`
	CompletedByName string     `json:"completedByName,omitempty"`
}

// DecodeForm parses a flat form document of the given kind. Empty-string
// fields are scrubbed before decoding so a blank input in a draft never
// shows up as a deliberate value.
func DecodeForm(t FormType, data []byte) (*Form, error) {
	scrubbed, err := scrubEmptyStrings(data)
	if err != nil {
		return nil, Validationf("invalid JSON body")
	}

	var env formEnvelope
	if err := json.Unmarshal(scrubbed, &env); err != nil {
		return nil, Validationf("invalid JSON body")
	}

	f := &Form{
		ID:              env.ID,
		Type:            t,
		Status:          env.Status,
		CompletedByUser: env.CompletedByUser,
		CompletedByName: env.CompletedByName,
	}
	if f.Status == "" {
		f.Status = StatusDraft
	}

	switch t {
	case FormDailyLog:
		f.DailyLog = &DailyLog{}
		err = json.Unmarshal(scrubbed, f.DailyLog)
	case FormVehicleInspection:
		f.VehicleInspection = &VehicleInspection{}
		err = json.Unmarshal(scrubbed, f.VehicleInspection)
	case FormSafetyMeeting:
		f.SafetyMeeting = &SafetyMeeting{}
		err = json.Unmarshal(scrubbed, f.SafetyMeeting)
	case FormScaffoldInspection:
		f.ScaffoldInspection = &ScaffoldInspection{}
		err = json.Unmarshal(scrubbed, f.ScaffoldInspection)
	default:
		return nil, Validationf("invalid form type %q", t)
	}
	if err != nil {
		return nil, Validationf("malformed %s document: %v", t, err)
	}
	return f, nil
}

// Payload returns the kind-specific record as an untyped value.
func (f *Form) Payload() any {
	switch f.Type {
	case FormDailyLog:
		return f.DailyLog
	case FormVehicleInspection:
		return f.VehicleInspection
	case FormSafetyMeeting:
		return f.SafetyMeeting
	case FormScaffoldInspection:
		return f.ScaffoldInspection
	}
	return nil
}

// SetPayload decodes raw payload JSON into the slot matching f.Type.
func (f *Form) SetPayload(raw []byte) error {
	switch f.Type {
	case FormDailyLog:
		f.DailyLog = &DailyLog{}
		return json.Unmarshal(raw, f.DailyLog)
	case FormVehicleInspection:
		f.VehicleInspection = &VehicleInspection{}
		return json.Unmarshal(raw, f.VehicleInspection)
	case FormSafetyMeeting:
		f.SafetyMeeting = &SafetyMeeting{}
		return json.Unmarshal(raw, f.SafetyMeeting)
	case FormScaffoldInspection:
		f.ScaffoldInspection = &ScaffoldInspection{}
		return json.Unmarshal(raw, f.ScaffoldInspection)
	}
	return Validationf("invalid form type %q", f.Type)
}

func (f *Form) MarshalJSON() ([]byte, error) {
	m := map[string]any{}

	if payload := f.Payload(); payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
	}

	m["id"] = f.ID
	m["formType"] = f.Type
	m["status"] = f.Status
	if f.CompletedByUser != "" {
		m["completedByUser"] = f.CompletedByUser
	}
	if f.CompletedByName != "" {
		m["completedByName"] = f.CompletedByName
	}
	m["createdAt"] = f.CreatedAt.UTC().Format(time.RFC3339)
	m["updatedAt"] = f.UpdatedAt.UTC().Format(time.RFC3339)

	return json.Marshal(m)
}

// scrubEmptyStrings removes ""-valued object fields recursively, the
// way drafts arrive from the UI with untouched inputs.
func scrubEmptyStrings(data []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(scrubValue(v))
}

func scrubValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if s, ok := item.(string); ok && s == "" {
				continue
			}
			out[k] = scrubValue(item)
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, scrubValue(item))
		}
		return out
	default:
		return v
	}
}

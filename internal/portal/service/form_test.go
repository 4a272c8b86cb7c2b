package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stuccorite/fieldforms/internal/portal/domain"
)

func newFormService(t *testing.T) (*FormService, *domain.User) {
	t.Helper()
	auth, st := newAuthService(t)
	userID := registerTestUser(t, auth)
	user, err := st.Users().GetByID(context.Background(), userID)
	require.NoError(t, err)
	return &FormService{Store: st}, user
}

func TestCreateDraftAllowsMissingFields(t *testing.T) {
	svc, user := newFormService(t)
	ctx := context.Background()

	form, err := svc.Create(ctx, domain.FormDailyLog, []byte(`{
		"status": "draft",
		"job": "Maple Street Duplex"
	}`), user)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDraft, form.Status)
	require.NotEmpty(t, form.ID)
	require.Empty(t, form.CompletedByUser)
}

func TestCompleteDraftRequiresFields(t *testing.T) {
	svc, user := newFormService(t)
	ctx := context.Background()

	form, err := svc.Create(ctx, domain.FormDailyLog, []byte(`{
		"status": "draft",
		"job": "Maple Street Duplex"
	}`), user)
	require.NoError(t, err)

	// Completing without a daily report fails validation.
	_, err = svc.Update(ctx, domain.FormDailyLog, form.ID, []byte(`{
		"status": "completed",
		"date": "2024-03-15T00:00:00Z",
		"job": "Maple Street Duplex",
		"personInCharge": "Sam Ortiz",
		"personCompletingLog": "Maria Sanchez"
	}`), user)
	require.True(t, domain.IsValidation(err), "got %v", err)

	// The stored form is untouched.
	stored, err := svc.Get(ctx, domain.FormDailyLog, form.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDraft, stored.Status)
}

func TestCompletionAttribution(t *testing.T) {
	svc, user := newFormService(t)
	ctx := context.Background()

	form, err := svc.Create(ctx, domain.FormDailyLog, []byte(`{
		"status": "completed",
		"date": "2024-03-15T00:00:00Z",
		"job": "Maple Street Duplex",
		"personInCharge": "Sam Ortiz",
		"personCompletingLog": "Maria Sanchez",
		"dailyReport": "Finish coat on garage wall."
	}`), user)
	require.NoError(t, err)
	require.Equal(t, user.ID, form.CompletedByUser)
	require.Equal(t, "Maria Sanchez", form.CompletedByName)

	// Attribution survives later updates by other callers.
	updated, err := svc.Update(ctx, domain.FormDailyLog, form.ID, []byte(`{
		"status": "completed",
		"date": "2024-03-15T00:00:00Z",
		"job": "Maple Street Duplex",
		"personInCharge": "Sam Ortiz",
		"personCompletingLog": "Maria Sanchez",
		"dailyReport": "Finish coat on garage wall. Touch-ups done."
	}`), nil)
	require.NoError(t, err)
	require.Equal(t, user.ID, updated.CompletedByUser)
}

func TestVehicleInspectionRoleValidation(t *testing.T) {
	svc, user := newFormService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.FormVehicleInspection, []byte(`{
		"status": "draft",
		"attendees": [{"name": "Casey Lin", "role": "pilot"}]
	}`), user)
	require.True(t, domain.IsValidation(err), "got %v", err)

	_, err = svc.Create(ctx, domain.FormVehicleInspection, []byte(`{
		"status": "draft",
		"attendees": [{"name": "Casey Lin", "role": "driver"}]
	}`), user)
	require.NoError(t, err)
}

func TestListFilterByStatus(t *testing.T) {
	svc, user := newFormService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.FormSafetyMeeting, []byte(`{"status": "draft"}`), user)
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.FormSafetyMeeting, []byte(`{
		"status": "completed",
		"date": "2024-03-15T00:00:00Z",
		"jobName": "Harbor Plaza",
		"topic": "Ladder safety",
		"attendees": [{"name": "Alex Mason"}]
	}`), user)
	require.NoError(t, err)

	all, err := svc.List(ctx, domain.FormSafetyMeeting, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	drafts, err := svc.List(ctx, domain.FormSafetyMeeting, domain.StatusDraft)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
}

func TestDeleteForm(t *testing.T) {
	svc, user := newFormService(t)
	ctx := context.Background()

	form, err := svc.Create(ctx, domain.FormScaffoldInspection, []byte(`{"status": "draft"}`), user)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, domain.FormScaffoldInspection, form.ID))
	require.ErrorIs(t, svc.Delete(ctx, domain.FormScaffoldInspection, form.ID), ErrFormNotFound)
	_, err = svc.Get(ctx, domain.FormScaffoldInspection, form.ID)
	require.ErrorIs(t, err, ErrFormNotFound)
}

func TestExportProducesPDF(t *testing.T) {
	svc, user := newFormService(t)
	ctx := context.Background()

	form, err := svc.Create(ctx, domain.FormSafetyMeeting, []byte(`{
		"status": "completed",
		"date": "2024-03-15T00:00:00Z",
		"jobName": "Harbor Plaza",
		"topic": "Ladder safety",
		"attendees": [{"name": "Alex Mason"}]
	}`), user)
	require.NoError(t, err)

	out, filename, err := svc.Export(ctx, domain.FormSafetyMeeting, form.ID, false)
	require.NoError(t, err)
	require.Equal(t, "safety-meeting-"+form.ID+".pdf", filename)
	require.True(t, len(out) > 0)
	require.Equal(t, "%PDF-1.4", string(out[:8]))

	// The summary variant is a single-page text export.
	out, _, err = svc.Export(ctx, domain.FormSafetyMeeting, form.ID, true)
	require.NoError(t, err)
	require.Contains(t, string(out), "Safety Meeting")
	require.Contains(t, string(out), "Harbor Plaza")
}

func TestFormWireShapeRoundTrip(t *testing.T) {
	svc, user := newFormService(t)
	ctx := context.Background()

	form, err := svc.Create(ctx, domain.FormDailyLog, []byte(`{
		"status": "draft",
		"job": "Maple Street Duplex",
		"weather": ""
	}`), user)
	require.NoError(t, err)

	raw, err := json.Marshal(form)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(raw, &wire))
	require.Equal(t, form.ID, wire["id"])
	require.Equal(t, "daily-log", wire["formType"])
	require.Equal(t, "Maple Street Duplex", wire["job"])
	// Blank inputs are scrubbed, not stored as empty strings.
	_, present := wire["weather"]
	require.False(t, present)
}

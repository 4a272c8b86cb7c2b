package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stuccorite/fieldforms/internal/portal/domain"
	"github.com/stuccorite/fieldforms/internal/portal/geo"
)

type fixedGeocoder struct{ coords geo.Coordinates }

func (g fixedGeocoder) Geocode(ctx context.Context, address string) (geo.Coordinates, error) {
	return g.coords, nil
}

func newJobSiteFixture(t *testing.T) (*JobSiteService, *FormService, *domain.User) {
	t.Helper()
	forms, user := newFormService(t)
	sites := &JobSiteService{
		Store:    forms.Store,
		Geocoder: fixedGeocoder{coords: geo.Coordinates{Lat: 40.7, Lon: -74.0}},
	}
	return sites, forms, user
}

func TestJobSitesDeduplicate(t *testing.T) {
	sites, forms, user := newJobSiteFixture(t)
	ctx := context.Background()

	_, err := forms.Create(ctx, domain.FormDailyLog, []byte(`{
		"status": "draft", "job": "Harbor Plaza", "jobAddress": "12 Dock Rd"
	}`), user)
	require.NoError(t, err)

	// Same site from a different form kind with different casing.
	_, err = forms.Create(ctx, domain.FormSafetyMeeting, []byte(`{
		"status": "draft", "jobName": "HARBOR PLAZA", "jobAddress": "12 DOCK RD"
	}`), user)
	require.NoError(t, err)

	_, err = forms.Create(ctx, domain.FormScaffoldInspection, []byte(`{
		"status": "draft", "jobName": "Maple Street Duplex", "siteAddress": "8 Maple St"
	}`), user)
	require.NoError(t, err)

	// Forms without an address contribute nothing.
	_, err = forms.Create(ctx, domain.FormDailyLog, []byte(`{
		"status": "draft", "job": "No Address Job"
	}`), user)
	require.NoError(t, err)

	list, err := sites.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, site := range list {
		require.True(t, site.Active)
	}
}

func TestJobSitesNewestFirst(t *testing.T) {
	sites, forms, user := newJobSiteFixture(t)
	ctx := context.Background()

	_, err := forms.Create(ctx, domain.FormDailyLog, []byte(`{
		"status": "draft", "job": "First", "jobAddress": "1 First Ave"
	}`), user)
	require.NoError(t, err)
	_, err = forms.Create(ctx, domain.FormDailyLog, []byte(`{
		"status": "draft", "job": "Second", "jobAddress": "2 Second Ave"
	}`), user)
	require.NoError(t, err)

	list, err := sites.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.False(t, list[0].UpdatedAt.Before(list[1].UpdatedAt))
}

func TestJobSiteArchive(t *testing.T) {
	sites, forms, user := newJobSiteFixture(t)
	ctx := context.Background()

	_, err := forms.Create(ctx, domain.FormDailyLog, []byte(`{
		"status": "draft", "job": "Harbor Plaza", "jobAddress": "12 Dock Rd"
	}`), user)
	require.NoError(t, err)

	require.NoError(t, sites.SetActive(ctx, "Harbor Plaza", "12 Dock Rd", false, user.ID))

	list, err := sites.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.False(t, list[0].Active)

	// Restoring flips it back; the marker matches case-insensitively.
	require.NoError(t, sites.SetActive(ctx, "HARBOR PLAZA", "12 DOCK RD", true, user.ID))
	list, err = sites.List(ctx)
	require.NoError(t, err)
	require.True(t, list[0].Active)
}

func TestJobSiteLocate(t *testing.T) {
	sites, _, _ := newJobSiteFixture(t)

	coords, err := sites.Locate(context.Background(), "12 Dock Rd")
	require.NoError(t, err)
	require.Equal(t, 40.7, coords.Lat)

	_, err = sites.Locate(context.Background(), "  ")
	require.True(t, domain.IsValidation(err))
}

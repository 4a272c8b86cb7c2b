package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stuccorite/fieldforms/internal/portal/domain"
	"github.com/stuccorite/fieldforms/internal/portal/geo"
	"github.com/stuccorite/fieldforms/internal/portal/store"
	"github.com/stuccorite/fieldforms/pkg/idx"
)

// JobSiteService derives the job-site list from form submissions and
// maintains the archive markers layered on top of it.
type JobSiteService struct {
	Store    store.Store
	Geocoder geo.Geocoder

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *JobSiteService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List scans every form kind for addresses, keeps the newest row per
// normalized (job name, address) pair and merges in archive markers.
// Sites with no marker are active.
func (s *JobSiteService) List(ctx context.Context) ([]domain.JobSite, error) {
	seen := make(map[string]struct{})
	var sites []domain.JobSite

	for _, t := range domain.AllFormTypes() {
		rows, err := s.Store.Forms().ListJobSiteRows(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("scan %s forms: %w", t, err)
		}
		for _, row := range rows {
			key := siteKey(row.JobName, row.Address)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			row.Active = true
			sites = append(sites, row)
		}
	}

	statuses, err := s.Store.JobSiteStatuses().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load site statuses: %w", err)
	}
	byKey := make(map[string]*domain.JobSiteStatus, len(statuses))
	for _, st := range statuses {
		byKey[siteKey(st.JobName, st.Address)] = st
	}
	for i := range sites {
		if st, ok := byKey[siteKey(sites[i].JobName, sites[i].Address)]; ok {
			sites[i].Active = st.Active
		}
	}

	sort.SliceStable(sites, func(i, j int) bool {
		return sites[i].UpdatedAt.After(sites[j].UpdatedAt)
	})
	return sites, nil
}

// SetActive archives or restores a job site.
func (s *JobSiteService) SetActive(ctx context.Context, jobName, address string, active bool, byUserID string) error {
	now := s.now().UTC()
	status := &domain.JobSiteStatus{
		ID:        idx.New().String(),
		JobName:   jobName,
		Address:   address,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !active {
		status.ArchivedBy = byUserID
		status.ArchivedAt = &now
	}
	return s.Store.JobSiteStatuses().Upsert(ctx, status)
}

// Locate resolves a site address to map coordinates through the shared
// geocode cache.
func (s *JobSiteService) Locate(ctx context.Context, address string) (geo.Coordinates, error) {
	if strings.TrimSpace(address) == "" {
		return geo.Coordinates{}, domain.Validationf("address is required")
	}
	coords, err := s.Geocoder.Geocode(ctx, address)
	if err != nil && !errors.Is(err, geo.ErrNoResult) {
		return geo.Coordinates{}, fmt.Errorf("geocode address: %w", err)
	}
	return coords, err
}

func siteKey(jobName, address string) string {
	return strings.ToLower(strings.TrimSpace(jobName) + "-" + strings.TrimSpace(address))
}

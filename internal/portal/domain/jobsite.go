package domain

import "time"

// JobSite is a derived aggregation row, not an authoritative entity: it
// comes from scanning the form tables for addresses, deduplicated on
// the lower-cased (job name, address) pair and merged with any archive
// marker kept in job_site_statuses.
type JobSite struct {
	FormType  FormType   `json:"formType"`
	JobName   string     `json:"jobName"`
	Address   string     `json:"address"`
	Status    FormStatus `json:"status"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Active    bool       `json:"isActive"`
}

// JobSiteStatus is the persisted archive marker for a job site.
type JobSiteStatus struct {
	ID         string
	JobName    string
	Address    string
	Active     bool
	ArchivedBy string // user ID
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

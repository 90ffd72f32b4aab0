package models

import (
	"time"

	"gorm.io/datatypes"
)

// Report types recorded in report_revisions.
const (
	ReportTypeInspection = "inspection"
	ReportTypePayout     = "payout"
)

// ReportRevision is an immutable snapshot of a report, taken before every
// update. Updates are full-record and last-write-wins, so the revision
// trail is the only record of what got overwritten.
type ReportRevision struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	ReportType string         `json:"report_type" gorm:"type:VARCHAR(20);index:idx_report_revisions_key,unique,priority:1"`
	ReportID   string         `json:"report_id" gorm:"index:idx_report_revisions_key,unique,priority:2"`
	VersionNo  int            `json:"version_no" gorm:"not null;index:idx_report_revisions_key,unique,priority:3"`
	Snapshot   datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"created_at"`
}

package entities

import (
	"time"
)

type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusRejected  Status = "Rejected"
	StatusOffer     Status = "Offer"
)

// TrackedStatuses are the statuses reported separately in job stats.
var TrackedStatuses = []Status{StatusApplied, StatusInterview, StatusRejected, StatusOffer}

const (
	DefaultJobType  = "Full-time"
	DefaultPriority = "Medium"
)

// DateLayout is the calendar-date format used for every date field on the wire.
const DateLayout = "2006-01-02"

type Job struct {
	ID              int        `gorm:"primaryKey;autoIncrement"`
	Title           string     `gorm:"size:200;not null"`
	Company         string     `gorm:"size:200;not null"`
	Status          Status     `gorm:"size:50;not null;default:Applied;index"`
	JobType         string     `gorm:"size:50;not null;default:Full-time"`
	Priority        string     `gorm:"size:50;not null;default:Medium"`
	ApplicationDate time.Time  `gorm:"type:date"`
	Deadline        *time.Time `gorm:"type:date;index"`
	Description     string     `gorm:"type:text;not null"`
	Resume          string     `gorm:"size:500"`
	InterviewDate   *time.Time `gorm:"type:date"`
	Tags            []string   `gorm:"serializer:json"`
	JobLink         string     `gorm:"size:500"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// JobFields are the mutable fields of a job, replaced as a whole on edit.
type JobFields struct {
	Title           string
	Company         string
	Status          Status
	JobType         string
	Priority        string
	ApplicationDate time.Time
	Deadline        *time.Time
	Description     string
	InterviewDate   *time.Time
	Tags            []string
	JobLink         string
}

func NewJob(fields JobFields, now time.Time) *Job {
	job := &Job{}
	job.Apply(fields)
	if job.ApplicationDate.IsZero() {
		job.ApplicationDate = TruncateToDate(now)
	}
	return job
}

// Apply replaces every mutable field. ID and Resume are left untouched.
func (j *Job) Apply(fields JobFields) {
	j.Title = fields.Title
	j.Company = fields.Company
	j.Status = fields.Status
	j.JobType = fields.JobType
	j.Priority = fields.Priority
	j.ApplicationDate = fields.ApplicationDate
	j.Deadline = fields.Deadline
	j.Description = fields.Description
	j.InterviewDate = fields.InterviewDate
	j.Tags = fields.Tags
	j.JobLink = fields.JobLink

	if j.Status == "" {
		j.Status = StatusApplied
	}
	if j.JobType == "" {
		j.JobType = DefaultJobType
	}
	if j.Priority == "" {
		j.Priority = DefaultPriority
	}
	if j.Tags == nil {
		j.Tags = []string{}
	}
}

func (j *Job) HasResume() bool {
	return j.Resume != ""
}

// TruncateToDate drops the time of day, keeping the calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

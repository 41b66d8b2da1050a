package events

import "github.com/maxaizer/job-tracker/internal/entities"

var (
	JobDeletedTopic       = "JobDeletedEvent"
	DeadlineReminderTopic = "DeadlineReminderEvent"
)

type JobDeleted struct {
	JobID int
}

type DeadlineReminder struct {
	Job entities.Job
}

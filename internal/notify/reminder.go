// Package notify delivers deadline reminders to the tracker owner.
package notify

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-tracker/internal/entities"
	"github.com/maxaizer/job-tracker/internal/events"
)

func reminderSubject(job entities.Job) string {
	return "Job Application Deadline: " + job.Title
}

func reminderBody(job entities.Job) string {
	deadline := ""
	if date := entities.FormatDate(job.Deadline); date != nil {
		deadline = *date
	}
	return fmt.Sprintf("Reminder: The application deadline for %s at %s is on %s. Don't forget to apply!",
		job.Title, job.Company, deadline)
}

type reminderHandler interface {
	onDeadlineReminder(event events.DeadlineReminder)
}

func subscribe(bus EventBus.Bus, handler reminderHandler) error {
	return bus.Subscribe(events.DeadlineReminderTopic, handler.onDeadlineReminder)
}

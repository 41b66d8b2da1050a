package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-tracker/internal/entities"
	"github.com/maxaizer/job-tracker/internal/events"
	"github.com/maxaizer/job-tracker/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type upcomingJobsRepository interface {
	GetWithDeadlineFrom(ctx context.Context, from time.Time) ([]entities.Job, error)
}

// ReminderScheduler publishes a DeadlineReminder for every job with an upcoming deadline,
// once per interval. Nothing is remembered between firings.
type ReminderScheduler struct {
	jobs     upcomingJobsRepository
	bus      EventBus.Bus
	cron     *cron.Cron
	interval time.Duration
	now      func() time.Time
}

func NewReminderScheduler(jobs upcomingJobsRepository, bus EventBus.Bus, interval time.Duration) (*ReminderScheduler, error) {

	if interval <= 0 {
		return nil, errors.New("reminder interval must be greater than zero")
	}

	rs := &ReminderScheduler{
		jobs:     jobs,
		bus:      bus,
		cron:     cron.New(),
		interval: interval,
		now:      time.Now,
	}

	_, err := rs.cron.AddFunc("@every "+interval.String(), rs.fire)
	if err != nil {
		return nil, err
	}

	return rs, nil
}

// Start schedules the first firing one interval from now.
func (rs *ReminderScheduler) Start() {
	rs.cron.Start()
	log.Infof("reminder scheduler started, interval: %v", rs.interval)
}

// Stop waits for a running firing to finish.
func (rs *ReminderScheduler) Stop() {
	<-rs.cron.Stop().Done()
	log.Info("reminder scheduler stopped")
}

// RunOnce performs a single firing and returns the number of published reminders.
func (rs *ReminderScheduler) RunOnce(ctx context.Context) (int, error) {

	today := entities.TruncateToDate(rs.now())
	jobs, err := rs.jobs.GetWithDeadlineFrom(ctx, today)
	if err != nil {
		return 0, err
	}

	for _, job := range jobs {
		rs.bus.Publish(events.DeadlineReminderTopic, events.DeadlineReminder{Job: job})
	}
	return len(jobs), nil
}

func (rs *ReminderScheduler) fire() {
	sent, err := rs.RunOnce(context.Background())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get upcoming deadlines: %v", err)
		return
	}
	log.Infof("deadline reminders sent at %v, jobs: %d", rs.now(), sent)
}

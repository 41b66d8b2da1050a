package notify

import (
	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/job-tracker/internal/events"
	"github.com/maxaizer/job-tracker/internal/logger"
	"github.com/maxaizer/job-tracker/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type telegramAPI interface {
	Send(c botApi.Chattable) (botApi.Message, error)
}

// Telegram posts reminders into one fixed chat.
type Telegram struct {
	api    telegramAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	if err = botApi.SetLogger(log.StandardLogger()); err != nil {
		return nil, err
	}

	return &Telegram{api: api, chatID: chatID}, nil
}

func (t *Telegram) Subscribe(bus EventBus.Bus) error {
	return subscribe(bus, t)
}

func (t *Telegram) onDeadlineReminder(event events.DeadlineReminder) {
	msg := botApi.NewMessage(t.chatID, reminderSubject(event.Job)+"\n"+reminderBody(event.Job))
	if _, err := t.api.Send(msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("error occured while sending message: %v", err)
		return
	}
	metrics.RemindersSentCounter.WithLabelValues("telegram").Inc()
}

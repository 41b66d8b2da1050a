package notify

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-tracker/internal/config"
	"github.com/maxaizer/job-tracker/internal/events"
	"github.com/maxaizer/job-tracker/internal/logger"
	"github.com/maxaizer/job-tracker/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

type mailSender interface {
	DialAndSend(messages ...*mail.Msg) error
}

// Mailer sends every reminder to one fixed recipient. The connection upgrades to STARTTLS
// when the server offers it.
type Mailer struct {
	client    mailSender
	sender    string
	recipient string
}

func NewMailer(cfg config.MailConfig) (*Mailer, error) {
	options := []mail.Option{
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithPort(cfg.Port),
	}
	if cfg.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, options...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create mail client")
	}

	return &Mailer{client: client, sender: cfg.Sender, recipient: cfg.Recipient}, nil
}

func (m *Mailer) Subscribe(bus EventBus.Bus) error {
	return subscribe(bus, m)
}

func (m *Mailer) Send(subject, body string) error {
	msg, err := m.message(subject, body)
	if err != nil {
		return err
	}
	return m.client.DialAndSend(msg)
}

func (m *Mailer) onDeadlineReminder(event events.DeadlineReminder) {
	if err := m.Send(reminderSubject(event.Job), reminderBody(event.Job)); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeMail).
			Errorf("failed to send reminder for job %d: %v", event.Job.ID, err)
		return
	}
	metrics.RemindersSentCounter.WithLabelValues("mail").Inc()
}

// message encodes header values, so titles can't inject headers.
func (m *Mailer) message(subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.sender); err != nil {
		return nil, errors.Wrapf(err, "invalid sender %q", m.sender)
	}
	if err := msg.To(m.recipient); err != nil {
		return nil, errors.Wrapf(err, "invalid recipient %q", m.recipient)
	}
	msg.Subject(subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

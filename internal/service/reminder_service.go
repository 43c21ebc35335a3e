package service

import (
	"context"
	"encoding/json"
	"time"

	"telemed-scheduler/internal/infrastructure/messaging"

	"github.com/sirupsen/logrus"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AppointmentReminder is the payload handed to the deferred job
// consumer. ETA is one hour before the appointment's UTC instant; the
// consumer guarantees at-least-once delivery at or after that time.
type AppointmentReminder struct {
	AppointmentID uint      `json:"appointment_id"`
	DoctorID      uint      `json:"doctor_id"`
	UserID        uint      `json:"user_id"`
	ETA           time.Time `json:"eta"`
}

// ReminderScheduler hands reminder jobs to an external queue.
// Scheduling is fire-and-forget from the booking path: a failed
// publish must never fail the booking.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, reminder AppointmentReminder) error
}

type rabbitMQReminderScheduler struct {
	broker *messaging.RabbitMQBroker
	log    *logrus.Logger
}

func NewReminderScheduler(broker *messaging.RabbitMQBroker, log *logrus.Logger) ReminderScheduler {
	return &rabbitMQReminderScheduler{
		broker: broker,
		log:    log,
	}
}

func (s *rabbitMQReminderScheduler) ScheduleReminder(ctx context.Context, reminder AppointmentReminder) error {
	body, err := json.Marshal(reminder)
	if err != nil {
		return err
	}

	// Respect context deadline
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) <= 0 {
			return ctx.Err()
		}
	}

	err = s.broker.Publish(func(ch *amqp.Channel, queueName string) error {
		return ch.PublishWithContext(
			ctx,
			"",        // exchange (default)
			queueName, // routing key == queue name
			false,     // mandatory
			false,     // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now().UTC(),
				Body:         body,
			},
		)
	})
	if err != nil {
		return err
	}

	s.log.Infof("Reminder queued: appointment=%d, eta=%s", reminder.AppointmentID, reminder.ETA.Format(time.RFC3339))
	return nil
}

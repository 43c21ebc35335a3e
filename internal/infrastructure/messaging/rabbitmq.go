package messaging

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQBroker holds a connection and channel bound to a single
// durable queue. The circuit breaker keeps a flapping broker from
// stalling request handlers that publish fire-and-forget messages.
type RabbitMQBroker struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	queueName string
	cb        *gobreaker.CircuitBreaker
}

func NewRabbitMQBroker(amqpURL, queueName string) (*RabbitMQBroker, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Declare the queue (idempotent)
	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQBroker{
		conn:      conn,
		ch:        ch,
		queueName: queueName,
		cb:        newCircuitBreaker("RabbitMQ-" + queueName),
	}, nil
}

func (rmq *RabbitMQBroker) QueueName() string {
	return rmq.queueName
}

func (rmq *RabbitMQBroker) Close() error {
	if rmq.ch != nil {
		if err := rmq.ch.Close(); err != nil {
			return err
		}
	}
	if rmq.conn != nil {
		return rmq.conn.Close()
	}
	return nil
}

// Publish sends a persistent message through the circuit breaker.
func (rmq *RabbitMQBroker) Publish(publish func(ch *amqp.Channel, queueName string) error) error {
	_, err := rmq.cb.Execute(func() (interface{}, error) {
		return nil, publish(rmq.ch, rmq.queueName)
	})
	return err
}

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.Warnf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})
}

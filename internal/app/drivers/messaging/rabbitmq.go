package messaging

import (
	"sleepclinic-service/internal/app/config"
	"sleepclinic-service/internal/pkg/constvars"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
	conn, err := amqp091.DialConfig(driverConfig.RabbitMQ.URI(), newDialConfig())
	if err != nil {
		logrus.Fatalf("Failed to connect to rabbitMQ at %s:%d: %s", driverConfig.RabbitMQ.Host, driverConfig.RabbitMQ.Port, err.Error())
	}
	logrus.Println("Successfully connected to rabbitMQ")
	return conn
}

// newDialConfig names the connection after the service so it can be told
// apart in the broker's management UI.
func newDialConfig() amqp091.Config {
	dialConfig := amqp091.Config{
		Heartbeat:  10 * time.Second,
		Locale:     "en_US",
		Properties: amqp091.NewConnectionProperties(),
	}
	dialConfig.Properties.SetClientConnectionName(constvars.ServiceName)
	return dialConfig
}

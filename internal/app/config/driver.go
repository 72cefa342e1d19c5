package config

import (
	"net"

	"github.com/rabbitmq/amqp091-go"
)

// DriverConfig holds the connection settings of every backing service.
type DriverConfig struct {
	MongoDB  MongoDB
	Redis    Redis
	RabbitMQ RabbitMQ
	Minio    Minio
	Logger   Logger
}

// MongoDB credentials are applied through options.Credential, never the URI.
type MongoDB struct {
	Host     string
	Port     string
	Username string
	Password string
	DbName   string
}

func (m MongoDB) URI() string {
	return "mongodb://" + net.JoinHostPort(m.Host, m.Port)
}

type Redis struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (r Redis) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

type RabbitMQ struct {
	Host     string
	Port     int
	Username string
	Password string
}

// URI escapes the credentials, so passwords may contain any character.
func (r RabbitMQ) URI() string {
	return amqp091.URI{
		Scheme:   "amqp",
		Host:     r.Host,
		Port:     r.Port,
		Username: r.Username,
		Password: r.Password,
		Vhost:    "/",
	}.String()
}

type Minio struct {
	Host     string
	Port     string
	Username string
	Password string
	UseSSL   bool
}

func (m Minio) Endpoint() string {
	return net.JoinHostPort(m.Host, m.Port)
}

// Logger configures both the zap request logger and the logrus process logger.
// The output files are only used in production.
type Logger struct {
	Level               string
	OutputFileName      string
	OutputErrorFileName string
}

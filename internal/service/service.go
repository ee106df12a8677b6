package service

import (
	"context"
	"strings"
	"time"

	"github.com/IDS-Mandujano/electronica-back/internal/messaging"
	"github.com/IDS-Mandujano/electronica-back/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

// Config wires the dependencies shared by the services
type Config struct {
	Store     repository.Store
	Publisher messaging.Publisher
	Logger    *logrus.Logger
	// Clock defaults to time.Now
	Clock func() time.Time
}

func (c Config) withDefaults() Config {
	if c.Clock == nil {
		c.Clock = time.Now
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	return c
}

// validateRequest runs the struct tags and reports any failure with msg
func validateRequest(req interface{}, msg string) error {
	if err := validate.Struct(req); err != nil {
		return &ValidationError{Message: msg, Err: err}
	}
	return nil
}

// publish sends an event without failing the caller
func publish(ctx context.Context, cfg Config, event messaging.Event) {
	if cfg.Publisher == nil {
		return
	}
	if err := cfg.Publisher.Publish(ctx, event); err != nil {
		cfg.Logger.WithError(err).WithFields(logrus.Fields{
			"type":    event.Type,
			"subject": event.Subject,
		}).Warn("Failed to publish event")
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

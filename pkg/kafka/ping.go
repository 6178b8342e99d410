package kafka

import (
	"context"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
)

// Ping dials the brokers in order and succeeds as soon as one accepts a
// connection and answers a metadata request.
func Ping(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	dialer, err := cfg.dialer()
	if err != nil {
		return err
	}
	if dialer == nil {
		dialer = kafkago.DefaultDialer
	}

	var errs []error
	for _, broker := range cfg.Brokers {
		conn, err := dialer.DialContext(ctx, "tcp", broker)
		if err != nil {
			errs = append(errs, fmt.Errorf("dial %s: %w", broker, err))
			continue
		}
		_, err = conn.Brokers()
		_ = conn.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("metadata from %s: %w", broker, err))
			continue
		}
		return nil
	}
	return errors.Join(errs...)
}

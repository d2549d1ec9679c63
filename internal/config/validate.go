package config

import (
	"errors"
	"fmt"

	"github.com/ib-77/convee/internal/logging"
)

var ErrInvalid = errors.New("invalid config")

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: logging.level: %v", ErrInvalid, err))
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		errs = append(errs, fmt.Errorf("%w: logging.format must be text or json, got %q", ErrInvalid, c.Logging.Format))
	}

	rates := []struct {
		name string
		rate float64
	}{
		{"price.discount", c.Price.Discount},
		{"price.tax", c.Price.Tax},
		{"price.coupon", c.Price.Coupon},
	}
	for _, r := range rates {
		if r.rate < 0 || r.rate >= 1 {
			errs = append(errs, fmt.Errorf("%w: %s must be in [0, 1), got %v", ErrInvalid, r.name, r.rate))
		}
	}
	if c.Price.Fallback < 0 {
		errs = append(errs, fmt.Errorf("%w: price.fallback must not be negative", ErrInvalid))
	}

	if c.Batch.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: batch.workers must not be negative", ErrInvalid))
	}

	return errors.Join(errs...)
}

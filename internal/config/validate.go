package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31 {
		return fmt.Errorf("auth.password_hash_cost must be in [4, 31] (got %d)", c.Auth.PasswordHashCost)
	}

	if c.Loan.Period <= 0 {
		return fmt.Errorf("loan.period must be > 0 (got %v)", c.Loan.Period)
	}
	if c.Loan.SweepInterval <= 0 {
		return fmt.Errorf("loan.sweep_interval must be > 0 (got %v)", c.Loan.SweepInterval)
	}
	if c.Loan.ConflictRetries < 1 {
		return fmt.Errorf("loan.conflict_retries must be >= 1 (got %d)", c.Loan.ConflictRetries)
	}

	if err := c.Notify.validate(); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	return nil
}

func (n *NotifyConfig) validate() error {
	if n.Workers < 1 {
		return fmt.Errorf("workers must be >= 1 (got %d)", n.Workers)
	}
	if n.BatchSize < 1 {
		return fmt.Errorf("batch_size must be >= 1 (got %d)", n.BatchSize)
	}
	if n.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1 (got %d)", n.MaxAttempts)
	}
	if n.BackoffBase <= 0 {
		return fmt.Errorf("backoff_base must be > 0 (got %v)", n.BackoffBase)
	}
	if n.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be > 0 (got %v)", n.PollInterval)
	}
	if n.LeaseTime < n.SendTimeout {
		return fmt.Errorf("lease_time must cover send_timeout (lease %v < send %v)", n.LeaseTime, n.SendTimeout)
	}
	return nil
}

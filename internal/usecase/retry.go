package usecase

import "time"

// RetryPolicy bounds one source's fetch budget. Every attempt gets its
// own timeout; there is no backoff between attempts.
type RetryPolicy struct {
	MaxAttempts int
	Timeout     time.Duration
}

// DefaultRetryPolicy matches the stock fetch configuration.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts: 2,
	Timeout:     15 * time.Second,
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.Timeout <= 0 {
		p.Timeout = DefaultRetryPolicy.Timeout
	}
	return p
}

package ratelimit

import "context"

// ClientKey builds the limiter key shared by every login attempt from clientIP.
func ClientKey(clientIP string) string {
	return "client:" + clientIP
}

// LoginThrottle combines a per-account budget with a coarser per-client one so
// that rotating employee numbers from one address still runs out of attempts.
type LoginThrottle struct {
	account Limiter
	client  Limiter
}

// NewLoginThrottle returns a throttle. Either limiter may be nil to skip that budget.
func NewLoginThrottle(account, client Limiter) *LoginThrottle {
	return &LoginThrottle{account: account, client: client}
}

// Allow checks the client budget first, then the account budget. The first
// denial is returned; an error from either limiter is returned as-is.
func (t *LoginThrottle) Allow(ctx context.Context, clientIP, employeeNumber string) (*Result, error) {
	var last *Result
	if t.client != nil {
		res, err := t.client.Allow(ctx, ClientKey(clientIP))
		if err != nil {
			return nil, err
		}
		if !res.Allowed {
			return res, nil
		}
		last = res
	}
	if t.account != nil {
		res, err := t.account.Allow(ctx, LoginKey(clientIP, employeeNumber))
		if err != nil {
			return nil, err
		}
		last = res
	}
	if last == nil {
		return &Result{Allowed: true}, nil
	}
	return last, nil
}

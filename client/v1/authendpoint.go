package v1

import (
	"context"
	"time"

	"swissclock.ch/swissclock/timeclock"
)

type LoginDTO struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	User      timeclock.Employee `json:"user"`
}

type AuthEndpoint struct {
	transport *Transport
}

// Login exchanges credentials for a token and keeps it for later calls.
func (ep *AuthEndpoint) Login(ctx context.Context, username, password string) (*LoginDTO, error) {
	resp, err := ep.transport.Post(ctx, "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	if err != nil {
		return nil, err
	}

	result, err := decode[LoginDTO](resp)
	if err != nil {
		return nil, err
	}
	ep.transport.AuthToken = result.Token
	return &result, nil
}

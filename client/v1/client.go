package v1

type SwissClockClient struct {
	Transport *Transport
	Auth      *AuthEndpoint
	Clock     *ClockEndpoint
}

// NewSwissClockClient initializes the API client. token may be empty until
// Auth.Login is called.
func NewSwissClockClient(baseURL string, token string) *SwissClockClient {
	t := NewTransport(baseURL, token)
	return &SwissClockClient{
		Transport: t,
		Auth:      &AuthEndpoint{transport: t},
		Clock:     &ClockEndpoint{transport: t},
	}
}

package llm

import "context"

// UnavailableProvider is used when no credential is configured. Every call
// fails with ErrProviderUnavailable carrying the configuration error.
type UnavailableProvider struct {
	Reason error
}

// NewUnavailableProvider returns a provider that always fails with reason.
func NewUnavailableProvider(reason error) *UnavailableProvider {
	return &UnavailableProvider{Reason: reason}
}

func (u *UnavailableProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{Err: u.Reason}
}

func (u *UnavailableProvider) ModelID() string {
	return "unavailable"
}

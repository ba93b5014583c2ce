package agent

import (
	"context"
	"sync"

	apperrors "github.com/certlab/certmeter/internal/errors"
)

// Scripted is a TextGenerator that replays a fixed list of responses,
// cycling when exhausted. It backs offline measurement runs and tests
// where live generation is unavailable or unwanted.
type Scripted struct {
	name      string
	responses []string

	mu   sync.Mutex
	next int
}

// NewScripted creates a scripted provider replaying the given responses.
//
// Parameters:
//   - name: The provider name used in reporting.
//   - responses: The responses to replay, in order.
//
// Returns:
//   - *Scripted: The configured provider.
func NewScripted(name string, responses []string) *Scripted {
	return &Scripted{name: name, responses: responses}
}

// Generate returns the next scripted response, cycling when the script is
// exhausted. Safe for concurrent use.
func (s *Scripted) Generate(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(s.responses) == 0 {
		return "", apperrors.InsufficientDataError{Got: 0, Need: 1}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	resp := s.responses[s.next%len(s.responses)]
	s.next++
	return resp, nil
}

// Info returns the provider description.
func (s *Scripted) Info() ProviderInfo {
	return ProviderInfo{Name: s.name}
}

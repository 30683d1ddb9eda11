package cartapi

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockTransport struct {
	mock.Mock
}

// Ensure MockTransport implements Transport
var _ Transport = (*MockTransport)(nil)

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

func (m *MockTransport) Perform(ctx context.Context, endpoint string, req Request) Outcome {
	args := m.Called(ctx, endpoint, req)
	return args.Get(0).(Outcome)
}

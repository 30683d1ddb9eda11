package clock

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockClock records requested sleep durations instead of blocking.
type MockClock struct {
	mock.Mock
}

// Ensure MockClock implements Clock
var _ Clock = (*MockClock)(nil)

func NewMockClock() *MockClock {
	return &MockClock{}
}

func (m *MockClock) Sleep(d time.Duration) {
	m.Called(d)
}

// SleptDurations returns every duration passed to Sleep, in call order
func (m *MockClock) SleptDurations() []time.Duration {
	durations := []time.Duration{}
	for _, call := range m.Calls {
		if call.Method != "Sleep" {
			continue
		}
		durations = append(durations, call.Arguments.Get(0).(time.Duration))
	}
	return durations
}

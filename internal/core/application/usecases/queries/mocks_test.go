package queries_test

import (
	"settlement/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
)

// MockAggregateTracker satisfies the tracker dependency of the repositories
// used to seed test data.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

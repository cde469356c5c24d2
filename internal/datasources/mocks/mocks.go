// Package mocks holds testify mocks of the datasources interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/americanadages/adages-society/internal/datasources"
	"github.com/americanadages/adages-society/internal/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

var _ datasources.ProfileFetcher = (*MockProfileFetcher)(nil)

type MockProfileFetcher struct {
	mock.Mock
}

func NewMockProfileFetcher(t testingT) *MockProfileFetcher {
	m := &MockProfileFetcher{}
	register(&m.Mock, t)
	return m
}

func (m *MockProfileFetcher) FetchProfile(ctx context.Context, userID string) (domain.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Profile), args.Error(1)
}

var _ datasources.ProfileStatsCounter = (*MockProfileStatsCounter)(nil)

type MockProfileStatsCounter struct {
	mock.Mock
}

func NewMockProfileStatsCounter(t testingT) *MockProfileStatsCounter {
	m := &MockProfileStatsCounter{}
	register(&m.Mock, t)
	return m
}

func (m *MockProfileStatsCounter) CountProfileStats(ctx context.Context, userID string) (domain.ProfileStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.ProfileStats), args.Error(1)
}

var _ datasources.LatestAdageLister = (*MockLatestAdageLister)(nil)

type MockLatestAdageLister struct {
	mock.Mock
}

func NewMockLatestAdageLister(t testingT) *MockLatestAdageLister {
	m := &MockLatestAdageLister{}
	register(&m.Mock, t)
	return m
}

func (m *MockLatestAdageLister) ListLatestAdages(ctx context.Context, limit int) ([]domain.Adage, error) {
	args := m.Called(ctx, limit)
	adages, _ := args.Get(0).([]domain.Adage)
	return adages, args.Error(1)
}

var _ datasources.HealthChecker = (*MockHealthChecker)(nil)

type MockHealthChecker struct {
	mock.Mock
}

func NewMockHealthChecker(t testingT) *MockHealthChecker {
	m := &MockHealthChecker{}
	register(&m.Mock, t)
	return m
}

func (m *MockHealthChecker) CheckHealth(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

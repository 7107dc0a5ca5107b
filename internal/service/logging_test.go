package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipquote/rate-service/internal/domain/model"
)

type mockLogsRepo struct {
	created []*model.LogEntry
	queried []*model.LogEntry
	count   int64
}

func (m *mockLogsRepo) Create(ctx context.Context, entry *model.LogEntry) error {
	m.created = append(m.created, entry)
	return nil
}

func (m *mockLogsRepo) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	m.created = append(m.created, entries...)
	return nil
}

func (m *mockLogsRepo) Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error) {
	return m.queried, nil
}

func (m *mockLogsRepo) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return m.count, nil
}

func TestLoggingService_DelegatesToRepository(t *testing.T) {
	repo := &mockLogsRepo{queried: []*model.LogEntry{{Message: "stored"}}, count: 7}
	svc := NewLoggingService(repo)
	ctx := context.Background()

	require.NoError(t, svc.CreateLog(ctx, &model.LogEntry{Message: "one"}))
	require.NoError(t, svc.CreateLogs(ctx, []*model.LogEntry{{Message: "two"}, {Message: "three"}}))
	assert.Len(t, repo.created, 3)

	entries, err := svc.QueryLogs(ctx, model.LogQueryOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "stored", entries[0].Message)

	count, err := svc.CountLogs(ctx, model.LogQueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestLoggingService_NilRepository(t *testing.T) {
	svc := NewLoggingService(nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.CreateLog(ctx, &model.LogEntry{}), ErrRepositoryNotConfigured)
	assert.ErrorIs(t, svc.CreateLogs(ctx, nil), ErrRepositoryNotConfigured)

	_, err := svc.QueryLogs(ctx, model.LogQueryOptions{})
	assert.ErrorIs(t, err, ErrRepositoryNotConfigured)

	_, err = svc.CountLogs(ctx, model.LogQueryOptions{})
	assert.ErrorIs(t, err, ErrRepositoryNotConfigured)
}

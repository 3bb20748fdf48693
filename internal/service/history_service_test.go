package service

import (
	"context"
	"errors"
	"testing"

	"notes-manager-server/internal/domain"
	"notes-manager-server/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockVersionRepo reads the versions recorded by a mockNoteRepo.
type mockVersionRepo struct {
	notes *mockNoteRepo
	err   error
}

func (m *mockVersionRepo) GetVersions(ctx context.Context, noteID int64, limit int) ([]*domain.NoteVersion, error) {
	if m.err != nil {
		return nil, m.err
	}
	stored := m.notes.versions[noteID]
	versions := make([]*domain.NoteVersion, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		versions = append(versions, stored[i])
		if limit > 0 && len(versions) == limit {
			break
		}
	}
	return versions, nil
}

func (m *mockVersionRepo) GetVersion(ctx context.Context, noteID, versionID int64) (*domain.NoteVersion, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, v := range m.notes.versions[noteID] {
		if v.ID == versionID {
			return v, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockVersionRepo) CountVersions(ctx context.Context, noteID int64) (int, error) {
	return len(m.notes.versions[noteID]), m.err
}

func setupHistory(t *testing.T) (*NoteService, *HistoryService, *mockVersionRepo) {
	t.Helper()
	notes := newMockNoteRepo()
	versions := &mockVersionRepo{notes: notes}
	return NewNoteService(notes, testLogger()), NewHistoryService(versions, testLogger()), versions
}

func TestHistoryService_ListVersionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	notes, history, _ := setupHistory(t)

	note, err := notes.Create(ctx, &domain.CreateNoteRequest{Title: "Groceries", Content: "v1"})
	require.NoError(t, err)
	_, err = notes.Update(ctx, note.ID, &domain.UpdateNoteRequest{Content: ptr("v2")})
	require.NoError(t, err)
	_, err = notes.Update(ctx, note.ID, &domain.UpdateNoteRequest{Content: ptr("v3")})
	require.NoError(t, err)

	versions, err := history.ListVersions(ctx, note.ID, 0)
	require.NoError(t, err)

	require.Len(t, versions, 2)
	assert.Equal(t, "v2", versions[0].Content)
	assert.Equal(t, "v1", versions[1].Content)
}

func TestHistoryService_ListVersionsEmpty(t *testing.T) {
	ctx := context.Background()
	notes, history, _ := setupHistory(t)

	note, err := notes.Create(ctx, &domain.CreateNoteRequest{Title: "Untouched", Content: "v1"})
	require.NoError(t, err)

	versions, err := history.ListVersions(ctx, note.ID, 0)
	require.NoError(t, err)
	assert.NotNil(t, versions)
	assert.Empty(t, versions)

	versions, err = history.ListVersions(ctx, 404, 0)
	require.NoError(t, err)
	assert.NotNil(t, versions)
	assert.Empty(t, versions)
}

func TestHistoryService_LimitAndCount(t *testing.T) {
	ctx := context.Background()
	notes, history, _ := setupHistory(t)

	note, err := notes.Create(ctx, &domain.CreateNoteRequest{Title: "Drafts", Content: "v1"})
	require.NoError(t, err)
	for _, content := range []string{"v2", "v3", "v4"} {
		_, err = notes.Update(ctx, note.ID, &domain.UpdateNoteRequest{Content: ptr(content)})
		require.NoError(t, err)
	}

	versions, err := history.ListVersions(ctx, note.ID, 2)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "v3", versions[0].Content)
	assert.Equal(t, "v2", versions[1].Content)

	count, err := history.CountVersions(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestHistoryService_GetVersion(t *testing.T) {
	ctx := context.Background()
	notes, history, _ := setupHistory(t)

	note, err := notes.Create(ctx, &domain.CreateNoteRequest{Title: "Groceries", Content: "v1"})
	require.NoError(t, err)
	_, err = notes.Update(ctx, note.ID, &domain.UpdateNoteRequest{Content: ptr("v2")})
	require.NoError(t, err)

	version, err := history.GetVersion(ctx, note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "v1", version.Content)

	_, err = history.GetVersion(ctx, note.ID, 99)
	assert.ErrorIs(t, err, ErrVersionNotFound)
}

func TestHistoryService_StorageError(t *testing.T) {
	_, history, versions := setupHistory(t)
	versions.err = errors.New("connection reset")

	_, err := history.ListVersions(context.Background(), 1, 0)

	var sErr *StorageError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "list versions", sErr.Op)
}

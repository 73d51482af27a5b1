package store

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkpulse/pkg/contracts/domain"
)

func sampleResult() *domain.ParseResult {
	er := 0.05
	return &domain.ParseResult{
		Posts: []domain.Post{
			{Title: "With id", ActivityID: "7387527938654691329", Impressions: 100, Likes: 5, EngagementRate: &er},
			{Title: "Without id", Impressions: 40},
		},
		Daily: []domain.DailyMetric{
			{Impressions: 120},
		},
	}
}

func TestSaveAndLoadDataset(t *testing.T) {
	s := NewDatasetStore(t.TempDir(), nil)

	ds, err := s.SaveDataset("January upload", sampleResult())
	require.NoError(t, err)
	require.NotEmpty(t, ds.ID)
	assert.Equal(t, "January upload", ds.Name)
	assert.Equal(t, 2, ds.Counts.Posts)
	assert.Equal(t, 1, ds.Counts.Daily)
	assert.Equal(t, 1, ds.Counts.Snapshots)

	doc, err := s.Dataset(ds.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.ID, doc.Dataset.ID)
	require.Len(t, doc.Posts, 2)
	require.Len(t, doc.Snapshots, 1)
	assert.Equal(t, "7387527938654691329", doc.Snapshots[0].ActivityID)
	assert.Equal(t, ds.ID, doc.Snapshots[0].DatasetID)
}

func TestDatasetNotFound(t *testing.T) {
	s := NewDatasetStore(t.TempDir(), nil)

	_, err := s.Dataset("no-such-id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestListNewestFirst(t *testing.T) {
	s := NewDatasetStore(t.TempDir(), nil)

	first, err := s.SaveDataset("first", sampleResult())
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := s.SaveDataset("second", sampleResult())
	require.NoError(t, err)

	datasets, err := s.List()
	require.NoError(t, err)
	require.Len(t, datasets, 2)
	assert.Equal(t, second.ID, datasets[0].ID)
	assert.Equal(t, first.ID, datasets[1].ID)
}

func TestListEmptyDirectory(t *testing.T) {
	s := NewDatasetStore(t.TempDir()+"/never-created", nil)

	datasets, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, datasets)
}

func TestCurrentTracksLatestSave(t *testing.T) {
	s := NewDatasetStore(t.TempDir(), nil)

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Nil(t, cur)

	_, err = s.SaveDataset("first", sampleResult())
	require.NoError(t, err)
	second, err := s.SaveDataset("second", sampleResult())
	require.NoError(t, err)

	cur, err = s.Current()
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, second.ID, cur.Dataset.ID)
}

func TestDelete(t *testing.T) {
	s := NewDatasetStore(t.TempDir(), nil)

	ds, err := s.SaveDataset("doomed", sampleResult())
	require.NoError(t, err)

	require.NoError(t, s.Delete(ds.ID))

	_, err = s.Dataset(ds.ID)
	assert.Error(t, err)

	// Deleting the current dataset clears the pointer.
	cur, err := s.Current()
	require.NoError(t, err)
	assert.Nil(t, cur)

	assert.Error(t, s.Delete(ds.ID))
}

func TestClear(t *testing.T) {
	s := NewDatasetStore(t.TempDir(), nil)

	_, err := s.SaveDataset("a", sampleResult())
	require.NoError(t, err)
	_, err = s.SaveDataset("b", sampleResult())
	require.NoError(t, err)

	require.NoError(t, s.Clear())

	datasets, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, datasets)
}

func TestSnapshots(t *testing.T) {
	now := time.Now().UTC()
	posts := []domain.Post{
		{ActivityID: "111", Impressions: 10},
		{ActivityID: "", Impressions: 20},
		{ActivityID: "333", Impressions: 30},
	}

	snaps := Snapshots(posts, "ds-1", now)
	require.Len(t, snaps, 2)
	assert.Equal(t, "111", snaps[0].ActivityID)
	assert.Equal(t, "333", snaps[1].ActivityID)
	assert.Equal(t, "ds-1", snaps[0].DatasetID)
	assert.Equal(t, now, snaps[0].ObservedAt)
}

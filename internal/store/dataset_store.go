// Package store persists normalized datasets as JSON documents on disk. It
// is the storage collaborator of the parsing core: it assigns dataset
// identity, associates rows with a dataset, derives post snapshots at save
// time and owns the replace-vs-append semantics across uploads.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"linkpulse/pkg/contracts/domain"
)

const currentPointerFile = "current.json"

// DatasetStore reads and writes dataset documents under a data directory.
// One file per dataset, plus a pointer file naming the current dataset.
type DatasetStore struct {
	dir    string
	logger *slog.Logger

	mu sync.Mutex
}

// Document is a fully materialized dataset: its identity plus every
// persisted collection.
type Document struct {
	Dataset               domain.Dataset                `json:"dataset"`
	Posts                 []domain.Post                 `json:"posts"`
	Daily                 []domain.DailyMetric          `json:"daily"`
	FollowersDaily        []domain.FollowersDaily       `json:"followers_daily"`
	FollowersDemographics []domain.FollowersDemographic `json:"followers_demographics"`
	Snapshots             []domain.PostSnapshot         `json:"snapshots"`
}

// NewDatasetStore creates a store rooted at dir. The directory is created on
// first save.
func NewDatasetStore(dir string, logger *slog.Logger) *DatasetStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetStore{
		dir:    dir,
		logger: logger.With(slog.String("component", "dataset_store")),
	}
}

// SaveDataset assigns a new dataset id, derives post snapshots, persists
// the parse result as one document and marks the dataset current. Re-uploads
// append a new dataset rather than overwrite; callers replace history via
// Delete or Clear.
func (s *DatasetStore) SaveDataset(name string, result *domain.ParseResult) (domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return domain.Dataset{}, fmt.Errorf("create data directory: %w", err)
	}

	now := time.Now().UTC()
	snapshots := Snapshots(result.Posts, "", now)

	ds := domain.Dataset{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		Counts: domain.DatasetCounts{
			Posts:                 len(result.Posts),
			Daily:                 len(result.Daily),
			FollowersDaily:        len(result.FollowersDaily),
			FollowersDemographics: len(result.FollowersDemographics),
			Snapshots:             len(snapshots),
		},
	}
	for i := range snapshots {
		snapshots[i].DatasetID = ds.ID
	}

	doc := Document{
		Dataset:               ds,
		Posts:                 result.Posts,
		Daily:                 result.Daily,
		FollowersDaily:        result.FollowersDaily,
		FollowersDemographics: result.FollowersDemographics,
		Snapshots:             snapshots,
	}
	if err := s.writeJSON(s.datasetPath(ds.ID), doc); err != nil {
		return domain.Dataset{}, err
	}
	if err := s.writeJSON(filepath.Join(s.dir, currentPointerFile), ds.ID); err != nil {
		return domain.Dataset{}, err
	}

	s.logger.Info("dataset saved",
		slog.String("dataset_id", ds.ID),
		slog.String("name", name),
		slog.Int("posts", ds.Counts.Posts),
		slog.Int("daily", ds.Counts.Daily),
		slog.Int("snapshots", ds.Counts.Snapshots))
	return ds, nil
}

// Dataset loads one dataset document by id.
func (s *DatasetStore) Dataset(id string) (*Document, error) {
	data, err := os.ReadFile(s.datasetPath(id))
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", id, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", id, err)
	}
	return &doc, nil
}

// List returns all dataset summaries, newest first.
func (s *DatasetStore) List() ([]domain.Dataset, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}

	var datasets []domain.Dataset
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == currentPointerFile || !strings.HasSuffix(name, ".json") {
			continue
		}
		doc, err := s.Dataset(strings.TrimSuffix(name, ".json"))
		if err != nil {
			s.logger.Warn("skipping unreadable dataset file",
				slog.String("file", name),
				slog.String("error", err.Error()))
			continue
		}
		datasets = append(datasets, doc.Dataset)
	}
	sort.Slice(datasets, func(i, j int) bool {
		return datasets[i].CreatedAt.After(datasets[j].CreatedAt)
	})
	return datasets, nil
}

// Current loads the dataset the current pointer names, or nil when no
// dataset has been saved yet.
func (s *DatasetStore) Current() (*Document, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, currentPointerFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read current pointer: %w", err)
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("decode current pointer: %w", err)
	}
	return s.Dataset(id)
}

// Delete removes one dataset document. Deleting the current dataset clears
// the pointer.
func (s *DatasetStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.datasetPath(id)); err != nil {
		return fmt.Errorf("delete dataset %s: %w", id, err)
	}
	cur, err := os.ReadFile(filepath.Join(s.dir, currentPointerFile))
	if err == nil && strings.Contains(string(cur), id) {
		os.Remove(filepath.Join(s.dir, currentPointerFile))
	}
	return nil
}

// Clear removes every dataset and the current pointer.
func (s *DatasetStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("clear datasets: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
				return fmt.Errorf("clear datasets: %w", err)
			}
		}
	}
	return nil
}

// Snapshots derives one point-in-time observation per post that carries an
// activity id. Posts without an id cannot be tracked across uploads and are
// skipped.
func Snapshots(posts []domain.Post, datasetID string, observedAt time.Time) []domain.PostSnapshot {
	var snapshots []domain.PostSnapshot
	for _, p := range posts {
		if p.ActivityID == "" {
			continue
		}
		snapshots = append(snapshots, domain.PostSnapshot{
			ActivityID:     p.ActivityID,
			DatasetID:      datasetID,
			ObservedAt:     observedAt,
			Impressions:    p.Impressions,
			Likes:          p.Likes,
			Comments:       p.Comments,
			Reposts:        p.Reposts,
			EngagementRate: p.EngagementRate,
		})
	}
	return snapshots
}

func (s *DatasetStore) datasetPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// writeJSON writes a value to path via a temp file and rename so a crashed
// save never leaves a truncated document.
func (s *DatasetStore) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

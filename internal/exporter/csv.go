// Package exporter writes normalized collections back out as CSV files so
// they can be re-opened in a spreadsheet or fed to other tooling.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"linkpulse/pkg/contracts/domain"
)

// CSVWriter writes normalized collections as CSV under an output directory.
type CSVWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVWriter creates a writer rooted at dir.
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		dir:    dir,
		logger: logger.With(slog.String("component", "csv_writer")),
	}
}

// WriteCSV writes one CSV file with a UTF-8 BOM so spreadsheet applications
// recognize the encoding.
func (w *CSVWriter) WriteCSV(name string, headers []string, records [][]string) error {
	path := filepath.Join(w.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(file)
	defer cw.Flush()

	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, record := range records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	w.logger.Info("CSV written",
		slog.String("file", name),
		slog.Int("records", len(records)))
	return cw.Error()
}

// WritePosts exports the posts collection.
func (w *CSVWriter) WritePosts(name string, posts []domain.Post) error {
	headers := []string{
		"Title", "Link", "Type", "CreatedAt", "ActivityID", "ContentType",
		"Impressions", "Likes", "Comments", "Reposts", "EngagementRate",
		"WordCount", "CharCount", "SentenceCount", "EmojiCount",
		"HashtagCount", "MentionCount", "LinkCount", "CTACount", "HasMedia",
	}
	records := make([][]string, 0, len(posts))
	for _, p := range posts {
		records = append(records, []string{
			p.Title, p.Link, p.Type,
			formatTime(p.CreatedAt), p.ActivityID, string(p.ContentType),
			formatFloat(p.Impressions), formatFloat(p.Likes),
			formatFloat(p.Comments), formatFloat(p.Reposts),
			formatFloatPtr(p.EngagementRate),
			formatInt(p.WordCount), formatInt(p.CharCount),
			formatInt(p.SentenceCount), formatInt(p.EmojiCount),
			formatInt(p.HashtagCount), formatInt(p.MentionCount),
			formatInt(p.LinkCount), formatInt(p.CTACount),
			formatBool(p.HasMedia),
		})
	}
	return w.WriteCSV(name, headers, records)
}

// WriteDaily exports the daily metrics collection.
func (w *CSVWriter) WriteDaily(name string, daily []domain.DailyMetric) error {
	headers := []string{
		"Date", "Impressions", "Clicks", "Reactions", "Comments",
		"Shares", "VideoViews", "EngagementRate",
	}
	records := make([][]string, 0, len(daily))
	for _, d := range daily {
		records = append(records, []string{
			formatTime(d.Date),
			formatFloat(d.Impressions),
			formatFloatPtr(d.Clicks), formatFloatPtr(d.Reactions),
			formatFloatPtr(d.Comments), formatFloatPtr(d.Shares),
			formatFloatPtr(d.VideoViews), formatFloatPtr(d.EngagementRate),
		})
	}
	return w.WriteCSV(name, headers, records)
}

// WriteFollowersDaily exports the daily follower-gain collection.
func (w *CSVWriter) WriteFollowersDaily(name string, rows []domain.FollowersDaily) error {
	headers := []string{
		"Date", "OrganicFollowers", "SponsoredFollowers",
		"AutoInvitedFollowers", "TotalFollowers",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			formatTime(r.Date),
			formatFloat(r.OrganicFollowers), formatFloat(r.SponsoredFollowers),
			formatFloat(r.AutoInvitedFollowers), formatFloat(r.TotalFollowers),
		})
	}
	return w.WriteCSV(name, headers, records)
}

// WriteFollowersDemographics exports the demographics collection.
func (w *CSVWriter) WriteFollowersDemographics(name string, rows []domain.FollowersDemographic) error {
	headers := []string{"CategoryType", "Category", "Count"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			string(r.CategoryType), r.Category, formatFloat(r.Count),
		})
	}
	return w.WriteCSV(name, headers, records)
}

package parsing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"linkpulse/pkg/contracts/domain"
)

// workbookBytes builds an in-memory workbook with one sheet per entry and
// returns the serialized file.
func workbookBytes(t *testing.T, sheets map[string][][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, grid := range sheets {
		if first {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range grid {
			for c, val := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, cell, val))
			}
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseFilesWorkbook(t *testing.T) {
	p := NewParser(nil, Limits{})

	data := workbookBytes(t, map[string][][]string{
		"All posts": {
			{"Post title", "Post link", "Post type", "Impressions", "Likes", "Comments", "Reposts"},
			{"Launch", "https://www.linkedin.com/feed/update/urn:li:activity:7387527938654691329/", "Image", "1000", "50", "10", "5"},
			{"Update", "", "Text", "300", "12", "2", "0"},
		},
		"Metrics": {
			{"Date", "Impressions", "Clicks", "Reactions", "Comments", "Shares", "Engagement rate"},
			{"2025-01-05", "400", "12", "30", "4", "2", "3%"},
		},
		"Notes": {
			{"Random", "Columns"},
			{"a", "b"},
		},
	})

	result := p.ParseFiles([]UploadFile{{Name: "analytics.xlsx", Data: data}})

	require.Empty(t, result.Failures)
	require.Len(t, result.Posts, 2)
	require.Len(t, result.Daily, 1)
	assert.Empty(t, result.FollowersDaily)
	assert.Empty(t, result.FollowersDemographics)

	assert.Equal(t, "Launch", result.Posts[0].Title)
	assert.Equal(t, "7387527938654691329", result.Posts[0].ActivityID)
	require.NotNil(t, result.Posts[0].CreatedAt)

	require.NotNil(t, result.Daily[0].Date)
	assert.Equal(t, 400.0, result.Daily[0].Impressions)
	require.NotNil(t, result.Daily[0].EngagementRate)
	assert.InDelta(t, 0.03, *result.Daily[0].EngagementRate, 1e-9)
}

func TestParseFilesCSV(t *testing.T) {
	p := NewParser(nil, Limits{})

	csvData := []byte("\xEF\xBB\xBF" +
		"Post title,Post link,Impressions,Likes,Comments,Reposts\n" +
		`"Hello, world",https://example.com/posts/1,100,5,1,0` + "\n")

	result := p.ParseFiles([]UploadFile{{Name: "posts.csv", ContentType: "text/csv", Data: csvData}})

	require.Empty(t, result.Failures)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "Hello, world", result.Posts[0].Title)
}

func TestParseFilesDemographicsCSV(t *testing.T) {
	p := NewParser(nil, Limits{})

	csvData := []byte("Location,Total followers,Percentage\n" +
		"Berlin,120,40%\n" +
		"Paris,80,26.7%\n")

	result := p.ParseFiles([]UploadFile{{Name: "Followers by location.csv", Data: csvData}})

	require.Empty(t, result.Failures)
	require.Len(t, result.FollowersDemographics, 2)
	assert.Equal(t, domain.DemographicLocation, result.FollowersDemographics[0].CategoryType)
	assert.Equal(t, "Berlin", result.FollowersDemographics[0].Category)
	assert.Equal(t, 120.0, result.FollowersDemographics[0].Count)
}

func TestParseFilesFailureIsolation(t *testing.T) {
	p := NewParser(nil, Limits{})

	good := []byte("Date,Impressions,Clicks\n2025-01-01,50,2\n")
	corrupt := []byte("not a zip archive at all")

	result := p.ParseFiles([]UploadFile{
		{Name: "broken.xlsx", Data: corrupt},
		{Name: "daily.csv", Data: good},
	})

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "broken.xlsx", result.Failures[0].FileName)
	require.Len(t, result.Daily, 1)
}

func TestParseFilesValidation(t *testing.T) {
	p := NewParser(nil, Limits{MaxFileSize: 10})

	t.Run("unsupported extension", func(t *testing.T) {
		result := p.ParseFiles([]UploadFile{{Name: "report.pdf", Data: []byte("x")}})
		require.Len(t, result.Failures, 1)
		assert.Contains(t, result.Failures[0].Reason, "unsupported")
	})

	t.Run("oversized file", func(t *testing.T) {
		result := p.ParseFiles([]UploadFile{{Name: "big.csv", Data: []byte("Date,Impressions\n1,2\n")}})
		require.Len(t, result.Failures, 1)
	})

	t.Run("declared type admits extensionless upload", func(t *testing.T) {
		small := NewParser(nil, Limits{})
		result := small.ParseFiles([]UploadFile{{
			Name:        "export",
			ContentType: "text/csv",
			Data:        []byte("Date,Impressions,Clicks\n2025-01-01,10,1\n"),
		}})
		require.Empty(t, result.Failures)
		require.Len(t, result.Daily, 1)
	})
}

func TestParseFilesRowCap(t *testing.T) {
	p := NewParser(nil, Limits{MaxSheetRows: 5})

	csvData := "Date,Impressions,Clicks\n"
	for i := 1; i <= 10; i++ {
		csvData += fmt.Sprintf("2025-01-%02d,%d,1\n", i, i*10)
	}

	result := p.ParseFiles([]UploadFile{{Name: "daily.csv", Data: []byte(csvData)}})

	require.Empty(t, result.Failures)
	assert.Len(t, result.Daily, 5)
}

func TestParseFilesEmptyBatch(t *testing.T) {
	p := NewParser(nil, Limits{})

	result := p.ParseFiles(nil)
	assert.True(t, result.IsEmpty())
	assert.Empty(t, result.Failures)
}

func TestSectionName(t *testing.T) {
	assert.Equal(t, "followers by location", sectionName("followers by location.csv"))
	assert.Equal(t, "archive.backup", sectionName("archive.backup.csv"))
	assert.Equal(t, "noext", sectionName("noext"))
	assert.Equal(t, ".hidden", sectionName(".hidden"))
}

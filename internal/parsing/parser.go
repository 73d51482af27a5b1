package parsing

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"linkpulse/internal/validation"
	"linkpulse/pkg/contracts/domain"
)

// UploadFile is one user-provided file: raw bytes plus the name and declared
// MIME type reported by the uploader.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Limits bounds per-file and per-sheet resource usage. The size and row caps
// are the pipeline's only resource-exhaustion guards; there are no internal
// timeouts.
type Limits struct {
	MaxFileSize  int64
	MaxSheetRows int
}

// DefaultLimits returns the production caps: 50 MB per file, 100000 data
// rows per sheet.
func DefaultLimits() Limits {
	return Limits{
		MaxFileSize:  50 << 20,
		MaxSheetRows: 100_000,
	}
}

// Parser drives the full ingestion pipeline over an upload batch: per-file
// validation, workbook/CSV dispatch, sheet detection and row normalization.
// Files are processed sequentially; the output collections are only appended
// to, so no locking is needed.
type Parser struct {
	logger     *slog.Logger
	detector   *Detector
	normalizer *Normalizer
	validator  *validation.UploadValidator
	limits     Limits
}

// NewParser creates a parser with the given limits. Zero limit fields take
// the defaults; a nil logger falls back to slog.Default().
func NewParser(logger *slog.Logger, limits Limits) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultLimits()
	if limits.MaxFileSize <= 0 {
		limits.MaxFileSize = def.MaxFileSize
	}
	if limits.MaxSheetRows <= 0 {
		limits.MaxSheetRows = def.MaxSheetRows
	}
	return &Parser{
		logger:     logger.With(slog.String("component", "parser")),
		detector:   NewDetector(DefaultHeaderVocabulary()),
		normalizer: NewNormalizer(nil),
		validator:  validation.NewUploadValidator(logger, limits.MaxFileSize),
		limits:     limits,
	}
}

// ParseFiles runs every file of a batch through the pipeline and aggregates
// the normalized rows. A failure on one file is recorded in the result and
// does not stop the remaining files; the batch always completes with a
// best-effort result.
func (p *Parser) ParseFiles(files []UploadFile) *domain.ParseResult {
	result := &domain.ParseResult{}
	for _, file := range files {
		if err := p.parseFile(file, result); err != nil {
			p.logger.Error("file skipped",
				slog.String("file", file.Name),
				slog.String("error", err.Error()))
			result.Failures = append(result.Failures, domain.FileFailure{
				FileName: file.Name,
				Reason:   err.Error(),
			})
		}
	}
	p.logger.Info("batch parsed",
		slog.Int("files", len(files)),
		slog.Int("posts", len(result.Posts)),
		slog.Int("daily", len(result.Daily)),
		slog.Int("followers_daily", len(result.FollowersDaily)),
		slog.Int("followers_demographics", len(result.FollowersDemographics)),
		slog.Int("failures", len(result.Failures)))
	return result
}

// parseFile validates and parses a single file, appending its rows to
// result. A panic inside workbook decoding is converted to an error so one
// corrupt file cannot take down the batch.
func (p *Parser) parseFile(file UploadFile, result *domain.ParseResult) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while parsing %s: %v", file.Name, r)
		}
	}()

	if err := p.validator.Validate(file.Name, file.ContentType, int64(len(file.Data))); err != nil {
		return err
	}

	if validation.IsDelimited(file.Name, file.ContentType) {
		grid, err := readDelimited(file.Data)
		if err != nil {
			return fmt.Errorf("file %s: %w", file.Name, err)
		}
		// The file name stands in for the sheet name so demographics
		// exported as CSV still infer their category.
		p.ingestGrid(sectionName(file.Name), grid, result)
		return nil
	}

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data), excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("open workbook %s: %w", file.Name, err)
	}
	defer wb.Close()

	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			p.logger.Warn("sheet unreadable",
				slog.String("file", file.Name),
				slog.String("sheet", sheet),
				slog.String("error", err.Error()))
			continue
		}
		p.ingestGrid(sheet, rows, result)
	}
	return nil
}

// ingestGrid runs sheet detection over one cell grid and routes its rows
// through the matching normalizer. Empty grids and unknown sheet kinds are
// skipped silently; they are legitimate inputs, not errors.
func (p *Parser) ingestGrid(sheetName string, grid [][]string, result *domain.ParseResult) {
	headers, data := p.detector.SheetToRows(grid)
	if len(headers) == 0 || len(data) == 0 {
		return
	}
	if len(data) > p.limits.MaxSheetRows {
		p.logger.Warn("sheet truncated",
			slog.String("sheet", sheetName),
			slog.Int("rows", len(data)),
			slog.Int("max_rows", p.limits.MaxSheetRows))
		data = data[:p.limits.MaxSheetRows]
	}

	kind := p.detector.ClassifySheet(headers)
	switch kind {
	case KindPosts:
		for _, rec := range data {
			result.Posts = append(result.Posts, p.normalizer.Post(rec))
		}
	case KindDaily:
		for _, rec := range data {
			result.Daily = append(result.Daily, p.normalizer.Daily(rec))
		}
	case KindFollowersDaily:
		for _, rec := range data {
			result.FollowersDaily = append(result.FollowersDaily, p.normalizer.FollowersDaily(rec))
		}
	case KindFollowersDemographics:
		for _, rec := range data {
			row := p.normalizer.FollowersDemographic(sheetName, rec)
			if row.CategoryType == domain.DemographicUnknown {
				continue
			}
			result.FollowersDemographics = append(result.FollowersDemographics, row)
		}
	default:
		p.logger.Debug("sheet kind unknown, skipped",
			slog.String("sheet", sheetName))
	}
}

// sectionName strips the extension from a file name so CSV files carry the
// same naming signal a workbook sheet would.
func sectionName(fileName string) string {
	if i := strings.LastIndex(fileName, "."); i > 0 {
		return fileName[:i]
	}
	return fileName
}

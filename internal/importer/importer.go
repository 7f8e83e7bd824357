// Package importer loads curriculum content (modules and lessons) from spreadsheets.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"skill-quest/internal/domain"
	"skill-quest/internal/dto"
	"skill-quest/internal/logger"
	"skill-quest/internal/service"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// listSeparator splits multi-value cells such as key takeaways.
const listSeparator = ";"

// ImportConfig defines which columns hold which lesson field.
type ImportConfig struct {
	FilePath           string // Path to the .xlsx or .csv file
	SheetName          string // Sheet to read (xlsx only)
	StartRow           int    // First data row, 1-based
	ModuleColumn       string
	TitleColumn        string
	OrderColumn        string
	DifficultyColumn   string
	XPRewardColumn     string
	IntroductionColumn string
	SectionColumn      string // Body of a single section named after the lesson
	TakeawaysColumn    string // Semicolon separated
}

// DefaultImportConfig returns the layout written by the content team's template.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SheetName:          "Sheet1",
		StartRow:           2,
		ModuleColumn:       "A",
		TitleColumn:        "B",
		OrderColumn:        "C",
		DifficultyColumn:   "D",
		XPRewardColumn:     "E",
		IntroductionColumn: "F",
		SectionColumn:      "G",
		TakeawaysColumn:    "H",
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	ModulesCreated int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer creates modules and lessons through the content service, so every row goes
// through the same validation as the HTTP API.
type Importer struct {
	content service.ContentService
}

func New(content service.ContentService) *Importer {
	return &Importer{content: content}
}

// ImportFile imports from cfg.FilePath, choosing the format by extension.
func (im *Importer) ImportFile(ctx context.Context, cfg ImportConfig) (*ImportResult, error) {
	file, err := os.Open(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.FilePath, err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(cfg.FilePath), ".csv") {
		return im.ImportCSV(ctx, file, cfg)
	}
	return im.ImportXLSX(ctx, file, cfg)
}

// ImportXLSX imports rows of cfg.SheetName from an Excel workbook.
func (im *Importer) ImportXLSX(ctx context.Context, r io.Reader, cfg ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return im.importRows(ctx, rows, cfg)
}

// ImportCSV imports rows from a comma separated file.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader, cfg ImportConfig) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return im.importRows(ctx, rows, cfg)
}

func (im *Importer) importRows(ctx context.Context, rows [][]string, cfg ImportConfig) (*ImportResult, error) {
	cols, err := resolveColumns(cfg)
	if err != nil {
		return nil, err
	}
	state, err := im.loadState(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	startRow := cfg.StartRow
	if startRow < 1 {
		startRow = 1
	}
	for i, row := range rows {
		if i < startRow-1 || isBlank(row) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.TotalProcessed++
		if err := im.processRow(ctx, row, cols, state, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	logger.Get().Info("Content import finished",
		zap.Int("processed", result.TotalProcessed),
		zap.Int("modulesCreated", result.ModulesCreated),
		zap.Int("lessonsCreated", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)))
	return result, nil
}

type columns struct {
	module, title, order, difficulty, xp, intro, section, takeaways int
}

func resolveColumns(cfg ImportConfig) (columns, error) {
	var cols columns
	targets := []struct {
		name   string
		letter string
		dst    *int
	}{
		{"module", cfg.ModuleColumn, &cols.module},
		{"title", cfg.TitleColumn, &cols.title},
		{"order", cfg.OrderColumn, &cols.order},
		{"difficulty", cfg.DifficultyColumn, &cols.difficulty},
		{"xpReward", cfg.XPRewardColumn, &cols.xp},
		{"introduction", cfg.IntroductionColumn, &cols.intro},
		{"section", cfg.SectionColumn, &cols.section},
		{"takeaways", cfg.TakeawaysColumn, &cols.takeaways},
	}
	for _, t := range targets {
		if t.letter == "" {
			*t.dst = -1
			continue
		}
		idx, err := columnToIndex(t.letter)
		if err != nil {
			return cols, fmt.Errorf("%s column: %w", t.name, err)
		}
		*t.dst = idx
	}
	if cols.module < 0 || cols.title < 0 {
		return cols, errors.New("module and title columns are required")
	}
	return cols, nil
}

// importState tracks modules by lower-cased title and the lesson titles already present.
type importState struct {
	moduleIDs     map[string]string
	lessonTitles  map[string]map[string]bool
	nextModuleOrd int
}

// loadState reads inactive modules too, so their titles and orders are not reused.
func (im *Importer) loadState(ctx context.Context) (*importState, error) {
	modules, err := im.content.GetAllModules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing modules: %w", err)
	}
	state := &importState{
		moduleIDs:     make(map[string]string, len(modules)),
		lessonTitles:  make(map[string]map[string]bool),
		nextModuleOrd: 1,
	}
	for _, m := range modules {
		state.moduleIDs[strings.ToLower(m.Title)] = m.ID
		if m.Order >= state.nextModuleOrd {
			state.nextModuleOrd = m.Order + 1
		}
	}
	return state, nil
}

func (im *Importer) processRow(ctx context.Context, row []string, cols columns, state *importState, result *ImportResult) error {
	moduleTitle := cell(row, cols.module)
	title := cell(row, cols.title)
	if moduleTitle == "" || title == "" {
		return errors.New("module and title are required")
	}

	moduleID, err := im.ensureModule(ctx, moduleTitle, state, result)
	if err != nil {
		return err
	}
	titles, err := im.lessonTitlesOf(ctx, moduleID, state)
	if err != nil {
		return err
	}
	if titles[strings.ToLower(title)] {
		result.Skipped++
		return nil
	}

	order, err := intCell(row, cols.order, len(titles)+1)
	if err != nil {
		return fmt.Errorf("invalid order: %w", err)
	}
	xp, err := intCell(row, cols.xp, 0)
	if err != nil {
		return fmt.Errorf("invalid xp reward: %w", err)
	}
	difficulty := strings.ToLower(cell(row, cols.difficulty))
	if difficulty == "" {
		difficulty = string(domain.DifficultyBeginner)
	}

	content := domain.LessonContent{
		Introduction: cell(row, cols.intro),
		Sections:     []domain.LessonSection{},
		KeyTakeaways: splitList(cell(row, cols.takeaways)),
	}
	if body := cell(row, cols.section); body != "" {
		content.Sections = append(content.Sections, domain.LessonSection{Title: title, Content: body})
	}

	_, err = im.content.CreateLesson(ctx, dto.CreateLessonRequest{
		ModuleID:   moduleID,
		Title:      title,
		Order:      order,
		Content:    content,
		XPReward:   xp,
		Difficulty: difficulty,
	})
	if err != nil {
		return err
	}
	titles[strings.ToLower(title)] = true
	result.Created++
	return nil
}

func (im *Importer) ensureModule(ctx context.Context, title string, state *importState, result *ImportResult) (string, error) {
	key := strings.ToLower(title)
	if id, ok := state.moduleIDs[key]; ok {
		return id, nil
	}
	created, err := im.content.CreateModule(ctx, dto.CreateModuleRequest{Title: title, Order: state.nextModuleOrd})
	if err != nil {
		return "", fmt.Errorf("failed to create module %q: %w", title, err)
	}
	state.moduleIDs[key] = created.ID
	state.lessonTitles[created.ID] = make(map[string]bool)
	state.nextModuleOrd++
	result.ModulesCreated++
	return created.ID, nil
}

func (im *Importer) lessonTitlesOf(ctx context.Context, moduleID string, state *importState) (map[string]bool, error) {
	if titles, ok := state.lessonTitles[moduleID]; ok {
		return titles, nil
	}
	lessons, err := im.content.GetLessonsByModule(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}
	titles := make(map[string]bool, len(lessons))
	for _, l := range lessons {
		titles[strings.ToLower(l.Title)] = true
	}
	state.lessonTitles[moduleID] = titles
	return titles, nil
}

// columnToIndex converts a column letter (A, B, ..., AA) to a 0-based index.
func columnToIndex(column string) (int, error) {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return 0, errors.New("empty column")
	}
	idx := 0
	for _, r := range column {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column %q", column)
		}
		idx = idx*26 + int(r-'A'+1)
	}
	return idx - 1, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func intCell(row []string, idx int, fallback int) (int, error) {
	v := cell(row, idx)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, listSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"olympiadbot/internal/domain"
	"olympiadbot/internal/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// SheetName is the worksheet every export is written to
const SheetName = "Olimpiada Qatnashchilari"

// ErrUnknownSubject is returned for subject keys outside the fixed set
var ErrUnknownSubject = errors.New("unknown subject")

var header = []string{"ID", "Name", "Surname", "School", "Class", "Subject", "Score"}

var columnWidths = []float64{10, 30, 30, 30, 10, 20, 10}

// DeliverFunc hands a rendered document to the gateway.
// The file at path is removed as soon as it returns.
type DeliverFunc func(path string) error

// Encoder renders per-subject spreadsheets from the record store
type Encoder struct {
	records repository.RecordRepository
	dir     string
	logger  *zap.Logger
}

// NewEncoder creates an encoder writing its transient files under dir
func NewEncoder(records repository.RecordRepository, dir string, logger *zap.Logger) *Encoder {
	return &Encoder{
		records: records,
		dir:     dir,
		logger:  logger,
	}
}

// FileName returns the document name used for a subject
func FileName(subject domain.Subject) string {
	return fmt.Sprintf("Olimpiada_Qatnashchilari_%s.xlsx", subject)
}

// Rows returns the records registered for the subject, matching case-insensitively
func (e *Encoder) Rows(subject domain.Subject) ([]domain.Record, error) {
	all, err := e.records.All()
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	var rows []domain.Record
	for _, r := range all {
		if strings.EqualFold(r.Subject, string(subject)) {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

// Export renders the subject's records and passes the file to deliver.
// It returns false without calling deliver when nobody is registered for the subject.
// The file never outlives the call, whether or not delivery succeeds.
func (e *Encoder) Export(rawSubject string, deliver DeliverFunc) (bool, error) {
	subject, ok := domain.ParseSubject(rawSubject)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownSubject, rawSubject)
	}

	rows, err := e.Rows(subject)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}

	tmpDir, err := os.MkdirTemp(e.dir, "export-*")
	if err != nil {
		return false, fmt.Errorf("create export dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			e.logger.Warn("Failed to remove export file",
				zap.String("dir", tmpDir),
				zap.Error(err),
			)
		}
	}()

	path := filepath.Join(tmpDir, FileName(subject))
	if err := writeWorkbook(path, rows); err != nil {
		return false, err
	}

	e.logger.Info("Export rendered",
		zap.String("subject", string(subject)),
		zap.Int("rows", len(rows)),
	)

	if err := deliver(path); err != nil {
		return true, fmt.Errorf("deliver export: %w", err)
	}
	return true, nil
}

func writeWorkbook(path string, rows []domain.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		var score interface{} = ""
		if r.HasScore() {
			score = *r.Score
		}
		values := []interface{}{r.ID, r.Name, r.Surname, r.School, r.Class, r.Subject, score}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", r.ID, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"olympiadbot/internal/domain"
	"olympiadbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func scored(r domain.Record, score int) domain.Record {
	r.Score = testutil.IntPtr(score)
	return r
}

func TestEncoder_Export(t *testing.T) {
	mockRepo := new(testutil.MockRecordRepository)
	mockRepo.On("All").Return([]domain.Record{
		testutil.NewTestRecord(1, 100, "math"),
		scored(testutil.NewTestRecord(2, 200, "it"), 95),
		testutil.NewTestRecord(3, 300, "english"),
		scored(testutil.NewTestRecord(4, 400, "IT"), 40),
	}, nil)

	dir := t.TempDir()
	enc := NewEncoder(mockRepo, dir, testutil.NewTestLogger())

	var delivered string
	found, err := enc.Export("it", func(path string) error {
		delivered = path
		assert.Equal(t, "Olimpiada_Qatnashchilari_it.xlsx", filepath.Base(path))

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, []string{SheetName}, f.GetSheetList())
		rows, err := f.GetRows(SheetName)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, header, rows[0])
		assert.Equal(t, []string{"2", "Aziz", "Karimov", "21-maktab", "9A", "it", "95"}, rows[1])
		assert.Equal(t, []string{"4", "Aziz", "Karimov", "21-maktab", "9A", "IT", "40"}, rows[2])

		width, err := f.GetColWidth(SheetName, "B")
		require.NoError(t, err)
		assert.Equal(t, float64(30), width)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, found)
	require.NotEmpty(t, delivered)
	_, statErr := os.Stat(delivered)
	assert.True(t, os.IsNotExist(statErr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	mockRepo.AssertExpectations(t)
}

func TestEncoder_ExportUnscoredRow(t *testing.T) {
	mockRepo := new(testutil.MockRecordRepository)
	mockRepo.On("All").Return([]domain.Record{testutil.NewTestRecord(1, 100, "math")}, nil)

	enc := NewEncoder(mockRepo, t.TempDir(), testutil.NewTestLogger())

	found, err := enc.Export("MATH", func(path string) error {
		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows(SheetName)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"1", "Aziz", "Karimov", "21-maktab", "9A", "math"}, rows[1][:6])
		if len(rows[1]) == 7 {
			assert.Equal(t, "", rows[1][6])
		}
		return nil
	})

	require.NoError(t, err)
	assert.True(t, found)
}

func TestEncoder_ExportNoParticipants(t *testing.T) {
	mockRepo := new(testutil.MockRecordRepository)
	mockRepo.On("All").Return([]domain.Record{testutil.NewTestRecord(1, 100, "math")}, nil)

	dir := t.TempDir()
	enc := NewEncoder(mockRepo, dir, testutil.NewTestLogger())

	called := false
	found, err := enc.Export("english", func(string) error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.False(t, found)
	assert.False(t, called)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEncoder_ExportDeliveryFailureRemovesFile(t *testing.T) {
	mockRepo := new(testutil.MockRecordRepository)
	mockRepo.On("All").Return([]domain.Record{testutil.NewTestRecord(1, 100, "russian")}, nil)

	dir := t.TempDir()
	enc := NewEncoder(mockRepo, dir, testutil.NewTestLogger())

	var delivered string
	found, err := enc.Export("russian", func(path string) error {
		delivered = path
		return fmt.Errorf("telegram unavailable")
	})

	assert.Error(t, err)
	assert.True(t, found)
	_, statErr := os.Stat(delivered)
	assert.True(t, os.IsNotExist(statErr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEncoder_ExportErrors(t *testing.T) {
	tests := []struct {
		name        string
		subject     string
		storeErr    error
		expectedErr error
	}{
		{
			name:        "unknown subject",
			subject:     "history",
			expectedErr: ErrUnknownSubject,
		},
		{
			name:     "store failure",
			subject:  "math",
			storeErr: fmt.Errorf("disk error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockRecordRepository)
			if tt.storeErr != nil {
				mockRepo.On("All").Return(nil, tt.storeErr)
			}
			enc := NewEncoder(mockRepo, t.TempDir(), testutil.NewTestLogger())

			found, err := enc.Export(tt.subject, func(string) error {
				t.Fatal("deliver must not be called")
				return nil
			})

			assert.Error(t, err)
			assert.False(t, found)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestEncoder_Rows(t *testing.T) {
	mockRepo := new(testutil.MockRecordRepository)
	mockRepo.On("All").Return([]domain.Record{
		testutil.NewTestRecord(1, 100, "math"),
		testutil.NewTestRecord(2, 200, "Math"),
		testutil.NewTestRecord(3, 300, "mathematics"),
	}, nil)

	enc := NewEncoder(mockRepo, t.TempDir(), testutil.NewTestLogger())

	rows, err := enc.Rows(domain.SubjectMath)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].ID)
	assert.Equal(t, 2, rows[1].ID)
}

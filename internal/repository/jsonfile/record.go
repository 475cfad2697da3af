package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"olympiadbot/internal/domain"
	"olympiadbot/internal/repository"

	"go.uber.org/zap"
)

// ErrStoreClosed is returned for operations issued after Close
var ErrStoreClosed = errors.New("record store closed")

type request struct {
	apply func(records []domain.Record) ([]domain.Record, bool, error)
	done  chan error
}

// RecordRepo implements repository.RecordRepository on a single JSON document.
// Every operation reads the whole document and every mutation rewrites it.
// Operations run one at a time on an owner goroutine, so concurrent
// read-modify-write cycles from different chats cannot lose updates.
type RecordRepo struct {
	path   string
	logger *zap.Logger

	requests chan request
	closing  chan struct{}
	stopped  chan struct{}
	once     sync.Once
}

var _ repository.RecordRepository = (*RecordRepo)(nil)

// NewRecordRepo starts the owner goroutine for the document at path
func NewRecordRepo(path string, logger *zap.Logger) *RecordRepo {
	r := &RecordRepo{
		path:     path,
		logger:   logger,
		requests: make(chan request),
		closing:  make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go r.run()
	return r
}

// Close stops the owner goroutine; pending callers get ErrStoreClosed
func (r *RecordRepo) Close() {
	r.once.Do(func() {
		close(r.closing)
		<-r.stopped
	})
}

func (r *RecordRepo) run() {
	defer close(r.stopped)
	for {
		select {
		case <-r.closing:
			return
		case req := <-r.requests:
			req.done <- r.execute(req.apply)
		}
	}
}

func (r *RecordRepo) execute(apply func([]domain.Record) ([]domain.Record, bool, error)) error {
	records := r.load()
	updated, dirty, err := apply(records)
	if err != nil || !dirty {
		return err
	}
	if err := r.save(updated); err != nil {
		r.logger.Error("Failed to write record store",
			zap.String("path", r.path),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *RecordRepo) do(apply func([]domain.Record) ([]domain.Record, bool, error)) error {
	req := request{apply: apply, done: make(chan error, 1)}

	select {
	case r.requests <- req:
	case <-r.closing:
		return ErrStoreClosed
	}

	select {
	case err := <-req.done:
		return err
	case <-r.stopped:
		select {
		case err := <-req.done:
			return err
		default:
			return ErrStoreClosed
		}
	}
}

// load reads the document; a missing or corrupt document reads as empty
func (r *RecordRepo) load() []domain.Record {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("Record store does not exist yet", zap.String("path", r.path))
		} else {
			r.logger.Warn("Failed to read record store, treating as empty",
				zap.String("path", r.path),
				zap.Error(err),
			)
		}
		return []domain.Record{}
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		r.logger.Warn("Record store is corrupt, treating as empty",
			zap.String("path", r.path),
			zap.Error(err),
		)
		return []domain.Record{}
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records
}

// save replaces the document through a temp file and rename
func (r *RecordRepo) save(records []domain.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary record file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temporary record file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing temporary record file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temporary record file: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming record file into place: %w", err)
	}
	return nil
}

// Append assigns the next id and persists the record
func (r *RecordRepo) Append(record domain.Record) (int, error) {
	var id int
	err := r.do(func(records []domain.Record) ([]domain.Record, bool, error) {
		id = len(records) + 1
		record.ID = id
		return append(records, record), true, nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// FindByID returns the record with the given id
func (r *RecordRepo) FindByID(id int) (*domain.Record, error) {
	var found *domain.Record
	err := r.do(func(records []domain.Record) ([]domain.Record, bool, error) {
		for i := range records {
			if records[i].ID == id {
				rec := records[i]
				found = &rec
				break
			}
		}
		return records, false, nil
	})
	return found, err
}

// UpdateScore sets the score of a record; later writes win
func (r *RecordRepo) UpdateScore(id, score int) error {
	return r.do(func(records []domain.Record) ([]domain.Record, bool, error) {
		for i := range records {
			if records[i].ID == id {
				s := score
				records[i].Score = &s
				return records, true, nil
			}
		}
		return records, false, repository.ErrRecordNotFound
	})
}

// All returns every record in document order
func (r *RecordRepo) All() ([]domain.Record, error) {
	var snapshot []domain.Record
	err := r.do(func(records []domain.Record) ([]domain.Record, bool, error) {
		snapshot = records
		return records, false, nil
	})
	return snapshot, err
}

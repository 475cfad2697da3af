package postgres

import (
	"database/sql"
	"fmt"

	"olympiadbot/internal/domain"
	"olympiadbot/internal/repository"
)

// RecordRepo implements repository.RecordRepository
type RecordRepo struct {
	db *sql.DB
}

var _ repository.RecordRepository = (*RecordRepo)(nil)

// NewRecordRepo creates a new record repository
func NewRecordRepo(db *sql.DB) *RecordRepo {
	return &RecordRepo{db: db}
}

// Append inserts a record with id = row count + 1.
// The table lock keeps concurrent appends from computing the same id.
func (r *RecordRepo) Append(record domain.Record) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`LOCK TABLE registrants IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return 0, fmt.Errorf("lock registrants: %w", err)
	}

	query := `
		INSERT INTO registrants (record_id, chat_id, name, surname, school, class, subject)
		SELECT COUNT(*) + 1, $1, $2, $3, $4, $5, $6 FROM registrants
		RETURNING record_id
	`
	var id int
	err = tx.QueryRow(query,
		record.ChatID, record.Name, record.Surname, record.School, record.Class, record.Subject,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert registrant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit append: %w", err)
	}
	return id, nil
}

// FindByID returns the record with the given id
func (r *RecordRepo) FindByID(id int) (*domain.Record, error) {
	query := `
		SELECT record_id, chat_id, name, surname, school, class, subject, score
		FROM registrants
		WHERE record_id = $1
	`
	rec, err := scanRecord(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateScore overwrites the score of a record
func (r *RecordRepo) UpdateScore(id, score int) error {
	query := `
		UPDATE registrants
		SET score = $1
		WHERE record_id = $2
	`
	res, err := r.db.Exec(query, score, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrRecordNotFound
	}
	return nil
}

// All returns every record ordered by id
func (r *RecordRepo) All() ([]domain.Record, error) {
	query := `
		SELECT record_id, chat_id, name, surname, school, class, subject, score
		FROM registrants
		ORDER BY record_id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*domain.Record, error) {
	var rec domain.Record
	var score sql.NullInt64
	if err := s.Scan(&rec.ID, &rec.ChatID, &rec.Name, &rec.Surname, &rec.School, &rec.Class, &rec.Subject, &score); err != nil {
		return nil, err
	}
	if score.Valid {
		v := int(score.Int64)
		rec.Score = &v
	}
	return &rec, nil
}

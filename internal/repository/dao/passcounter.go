package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	passCounterID = 1

	// passNumberBase is the seed value; the first issued number is base+1.
	passNumberBase   = 1000
	passNumberPrefix = "FP"
)

// PassCounter is a single-row table holding the last issued pass number.
// It must only ever be mutated through nextPassNumber.
type PassCounter struct {
	ID             uint  `gorm:"primaryKey"`
	LastPassNumber int64 `gorm:"not null"`
}

func seedPassCounter(db *gorm.DB) error {
	// ON CONFLICT DO NOTHING keeps restarts from resetting the sequence.
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&PassCounter{ID: passCounterID, LastPassNumber: passNumberBase}).Error
}

type PassCounterDAO struct {
	db *gorm.DB
}

func NewPassCounterDAO(db *gorm.DB) *PassCounterDAO {
	return &PassCounterDAO{
		db: db,
	}
}

// Next allocates a fresh pass number in its own transaction.
func (d *PassCounterDAO) Next(ctx context.Context) (string, error) {
	var pass string
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := nextPassNumber(tx)
		if err != nil {
			return err
		}
		pass = p

		return nil
	})

	return pass, err
}

// nextPassNumber increments and reads the counter within tx. The row-level
// lock taken by UPDATE serializes concurrent callers, so no two of them can
// observe the same value.
func nextPassNumber(tx *gorm.DB) (string, error) {
	var n int64
	row := tx.Raw(
		`UPDATE pass_counters SET last_pass_number = last_pass_number + 1 WHERE id = ? RETURNING last_pass_number`,
		passCounterID,
	).Row()
	if err := row.Scan(&n); err != nil {
		return "", fmt.Errorf("increment pass counter -> %w", err)
	}

	return fmt.Sprintf("%s%d", passNumberPrefix, n), nil
}

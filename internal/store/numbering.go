package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/diewo77/go-invoicing/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequence struct {
	prefix string
	model  any
}

var sequences = map[string]sequence{
	models.SequenceInvoice:   {prefix: "INV", model: &models.Invoice{}},
	models.SequenceQuotation: {prefix: "QT", model: &models.Quotation{}},
}

// NextNumber allocates the next document number for a sequence, formatted
// as PREFIX-00042. The sequence row is locked for the rest of the enclosing
// transaction, so callers should allocate inside the transaction that
// inserts the document.
func (s *Store) NextNumber(ctx context.Context, name string) (string, error) {
	seqDef, ok := sequences[name]
	if !ok {
		return "", fmt.Errorf("unknown sequence %q", name)
	}
	var next uint
	err := s.WithTx(ctx, func(tx *Store) error {
		db := tx.conn(ctx)
		locked := db
		if tx.dialect() != "sqlite" {
			locked = db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
		}
		var seq models.DocumentSequence
		err := locked.Where("name = ?", name).First(&seq).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = models.DocumentSequence{Name: name}
			if err := db.Create(&seq).Error; err != nil {
				return translate(err, "create sequence")
			}
		} else if err != nil {
			return translate(err, "lock sequence")
		}

		var maxID uint
		if err := db.Model(seqDef.model).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return translate(err, "max document id")
		}
		next = max(seq.LastValue, maxID) + 1
		return translate(db.Model(&models.DocumentSequence{}).Where("name = ?", name).
			Update("last_value", next).Error, "advance sequence")
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%05d", seqDef.prefix, next), nil
}

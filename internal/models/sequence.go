package models

// Sequence names.
const (
	SequenceInvoice   = "invoice"
	SequenceQuotation = "quotation"
)

// DocumentSequence tracks the last number handed out per document kind.
// Numbers are never reused, even after the newest document is deleted.
type DocumentSequence struct {
	Name      string `gorm:"primaryKey;size:50"`
	LastValue uint   `gorm:"not null;default:0"`
}

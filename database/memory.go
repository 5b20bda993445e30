package database

import (
	"context"
	"fmt"
	"sync"

	"PalmCare/models"

	"github.com/rs/zerolog"
)

// DB is the process-local store. Every table carries its own lock; nothing
// survives a restart.
type DB struct {
	Patients      *Table[models.Patient]
	Cases         *Table[models.CaseRecord]
	Triages       *Table[models.TriageAssessment]
	Consultations *Table[models.Consultation]
	LabOrders     *Table[models.LabOrder]
	Prescriptions *Table[models.Prescription]
	Inventory     *Table[models.InventoryItem]
	Invoices      *Table[models.Invoice]
	Payments      *Table[models.Payment]
	Notifications *Table[models.Notification]

	seqMu     sync.Mutex
	sequences map[string]int
}

// InitDB creates an empty store.
func InitDB(ctx context.Context, log zerolog.Logger) (*DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db := &DB{
		Patients:      NewTable[models.Patient]("patient"),
		Cases:         NewTable[models.CaseRecord]("case"),
		Triages:       NewTable[models.TriageAssessment]("triage assessment"),
		Consultations: NewTable[models.Consultation]("consultation"),
		LabOrders:     NewTable[models.LabOrder]("lab order"),
		Prescriptions: NewTable[models.Prescription]("prescription"),
		Inventory:     NewTable[models.InventoryItem]("inventory item"),
		Invoices:      NewTable[models.Invoice]("invoice"),
		Payments:      NewTable[models.Payment]("payment"),
		Notifications: NewTable[models.Notification]("notification"),
		sequences:     make(map[string]int),
	}
	log.Info().Msg("In-memory store initialized")
	return db, nil
}

// NextSequence returns the next value of the named sequence, starting at 1.
func (db *DB) NextSequence(name string) int {
	db.seqMu.Lock()
	defer db.seqMu.Unlock()
	db.sequences[name]++
	return db.sequences[name]
}

// NextID formats the next value of the sequence named after prefix, e.g.
// NextID("P", 4) yields "P-0001".
func (db *DB) NextID(prefix string, width int) string {
	return fmt.Sprintf("%s-%0*d", prefix, width, db.NextSequence(prefix))
}

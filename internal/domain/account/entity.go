package account

import (
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes households from bulk waste generators (hotels,
// restaurants, institutions). Both participate in the points ledger.
type Kind string

const (
	KindCitizen       Kind = "citizen"
	KindBulkGenerator Kind = "bulk_generator"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Account is the ledger record for one participant. Balance and score are
// only ever mutated through the ledger and compliance services; accounts are
// never deleted, only suspended.
type Account struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Kind            Kind      `db:"kind" json:"kind"`
	Name            string    `db:"name" json:"name"`
	Ward            string    `db:"ward" json:"ward"`
	PointBalance    int       `db:"point_balance" json:"point_balance"`
	ComplianceScore int       `db:"compliance_score" json:"compliance_score"`
	Status          Status    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

package readstore

import (
	"barberslot/internal/infra/db"
)

// Store implements shared.Reads over hand-written SQL. The unit of work
// rebinds it to a transaction; the bootstrap binds it to the pool for
// reads outside one.
type Store struct {
	db db.DBTX
}

func New(dbtx db.DBTX) *Store {
	return &Store{db: dbtx}
}

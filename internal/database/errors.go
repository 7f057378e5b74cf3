package database

import (
	"errors"
	"fmt"
)

var (
	ErrDatabaseEncrypted    = errors.New("database is encrypted")
	ErrDatabaseNotEncrypted = errors.New("database is not encrypted")
	ErrDatabaseCorrupted    = errors.New("database file is corrupted")
	ErrWrongPassphrase      = errors.New("incorrect passphrase")
	ErrSQLCipherUnavailable = errors.New("sqlcipher is unavailable")
	ErrNotFound             = errors.New("not found")
)

// Entity names the table an OpError refers to.
type Entity string

const (
	EntityUser     Entity = "user"
	EntitySettings Entity = "settings"
	EntitySession  Entity = "session"
	EntityPhaseLog Entity = "phase log"
	EntityTask     Entity = "task"
	EntityExport   Entity = "export"
)

// OpError wraps a failed database operation.
type OpError struct {
	Op     string
	Entity Entity
	ID     string
	Err    error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapErr(entity Entity, op string, id int64, err error) error {
	if err == nil {
		return nil
	}
	ref := ""
	if id > 0 {
		ref = fmt.Sprintf("%d", id)
	}
	return &OpError{Op: op, Entity: entity, ID: ref, Err: err}
}

func wrapSessionErr(op string, id string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Entity: EntitySession, ID: id, Err: err}
}

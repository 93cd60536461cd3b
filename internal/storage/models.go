package storage

import (
	"time"
)

const DefaultListLimit = 100

type AuditEvent struct {
	ID         string
	Operation  string
	SecretName string
	Subject    string
	Status     int
	RequestID  string
	CreatedAt  time.Time
}

// AuditFilter narrows ListAuditEvents. Zero values mean no restriction, except Limit which falls back to
// DefaultListLimit.
type AuditFilter struct {
	SecretName string
	Limit      int
}

type dbAuditEvent struct {
	ID         string `db:"id"`
	Operation  string `db:"operation"`
	SecretName string `db:"secret_name"`
	Subject    string `db:"subject"`
	Status     int    `db:"status"`
	RequestID  string `db:"request_id"`
	CreatedAt  int64  `db:"created_at"`
}

func toDB(e *AuditEvent) dbAuditEvent {
	return dbAuditEvent{
		ID:         e.ID,
		Operation:  e.Operation,
		SecretName: e.SecretName,
		Subject:    e.Subject,
		Status:     e.Status,
		RequestID:  e.RequestID,
		CreatedAt:  e.CreatedAt.UnixMilli(),
	}
}

func (d dbAuditEvent) toEvent() AuditEvent {
	return AuditEvent{
		ID:         d.ID,
		Operation:  d.Operation,
		SecretName: d.SecretName,
		Subject:    d.Subject,
		Status:     d.Status,
		RequestID:  d.RequestID,
		CreatedAt:  time.UnixMilli(d.CreatedAt).UTC(),
	}
}

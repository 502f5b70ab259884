// Package events carries task lifecycle notifications from the lifecycle
// manager to any number of handlers without coupling them to the service.
//
// The lifecycle manager emits a TaskEvent after every successful create,
// update, complete and delete. Handlers register with an EventEmitter; the
// server registers an AuditLogHandler that writes each event to the log.
package events

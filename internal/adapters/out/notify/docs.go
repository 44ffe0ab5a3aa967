// Package notify delivers order change events to connected clients.
//
// Changes flow through PostgreSQL's NOTIFY mechanism: after a handler commits
// a transition it publishes the change event on the "order_changes" channel,
// and every running instance receives it through a dedicated LISTEN
// connection. Received events fan out to in-process subscribers via Broker.
//
// Delivery is at-most-once. The broker drops events that are stale for their
// order (a lower or equal version than one already delivered) and closes
// subscribers that cannot keep up; clients recover by re-reading the current
// state, which always carries the latest version.
package notify

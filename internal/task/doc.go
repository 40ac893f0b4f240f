// Package task manages background job queuing and processing.
// It provides a small worker pool for asynchronous work that must not block
// HTTP request handling. The only work today is new-lesson notification
// dispatch, which by contract carries no delivery guarantee, so the queue is
// memory-only and pending tasks are dropped on shutdown.
package task

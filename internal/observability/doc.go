// Package observability builds the process logger.
//
// Every component receives the *zap.Logger constructed here by injection;
// request-scoped lines carry the chi request id as "request_id".
package observability

// Package acl is the anti-corruption layer between the moderation core and
// the hosted language model that rates submissions.
//
// The model's request and response shapes, its error envelope and its status
// vocabulary stay inside this package. Callers see [ports.RatingOracle]: a
// prompt goes in, raw reply text comes out, and every failure is a domain
// error.
//
// # Error Handling Strategy
//
// Failures arrive in three forms:
//   - Transport errors and client-level errors ([clients.ErrCircuitOpen],
//     [clients.ErrMaxRetriesExceeded])
//   - HTTP status codes
//   - A JSON error envelope: {"error":{"code":429,"message":"...","status":"RESOURCE_EXHAUSTED"}}
//
// The envelope's status name is preferred. A bare status code is first
// named in the same vocabulary, so one table maps both. A missing model maps
// to [domain.ErrNotFound] and everything else to [domain.ErrUnavailable],
// with any client error kept in the chain. The rater treats both as "no rating available"
// and falls back to the neutral assessment, so submissions never fail because
// the model did.
package acl

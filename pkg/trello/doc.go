// Package trello provides types, interfaces, and helpers for working with
// the Trello REST API.
//
// # Overview
//
// The trello package defines the domain types (e.g., Board, List, Card,
// Workspace, Webhook) and the interfaces for resource-oriented clients
// (e.g., BoardsClient, CardsClient). A concrete implementation of these
// clients is provided by the trelloclient package, which wires
// configuration, transport, retry, and pre-flight validation. Most consumers
// should import trelloclient to construct a client and then interact with
// the resource client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/kanban-io/trello-client/pkg/trello"
//	  "github.com/kanban-io/trello-client/pkg/trelloclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := trelloclient.New(&trello.Config{APIKey: "key", Token: "token"})
//	  if err != nil { log.Fatal(err) }
//
//	  boards, err := cli.Boards().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = boards
//	}
//
// # Errors
//
// Every failing call returns a classified *trello.Error whose Kind is one of
// a closed set (NotFound, Unauthorized, Forbidden, Validation, RateLimit,
// BadRequest, Network, Unknown). Use the Is* predicates or errors.As; raw
// HTTP status codes never escape the client. Rate-limit errors carry the
// wait duration in RetryAfter.
//
// # Retry
//
// Reads are retried on transient failures (rate limit, network) with capped
// exponential backoff and jitter. Mutating calls are issued exactly once
// unless the call site marks them idempotent. Pre-flight validation
// (resource existence, permission, payload shape) runs before any write.
package trello

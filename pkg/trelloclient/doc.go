// Package trelloclient provides the primary entry point for constructing a
// Trello API client that implements the trello.Client interface.
//
// It layers configuration, the HTTP transport with retry and rate limiting,
// and the pre-flight validation service on top of the resource interfaces and
// types defined in the trello package. Most applications should import
// trelloclient to build a client, then use the returned trello.Client to
// access resource-specific clients, for example Boards(), Cards(), Lists().
//
// Quick start
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
//
//	  cli, err := trelloclient.NewWithCredentials("api-key", "member-token")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a full configuration:
//	  cli, err = trelloclient.New(&trello.Config{
//	    APIKey:            "api-key",
//	    Token:             "member-token",
//	    RetryMax:          5,
//	    RequestsPerWindow: 90,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  boards, err := cli.Boards().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = boards
//	}
//
// # Errors
//
// Every failed call returns a *trello.Error carrying a classification kind.
// Use the trello.IsNotFound, trello.IsForbidden, trello.IsRateLimit family of
// predicates instead of matching on messages or status codes.
package trelloclient

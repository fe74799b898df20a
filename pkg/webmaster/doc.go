// Package webmaster provides types, interfaces, and helpers for working with the
// Yandex Webmaster API v4.
//
// # Overview
//
// The webmaster package defines the request and response types (HostInfo,
// HostSummary, RecrawlTask, ...) and the interfaces of the per-area clients
// (HostsClient, SitemapsClient, RecrawlClient, ...). A concrete implementation
// is provided by the wmclient package, which wires configuration, transport
// and authentication. Most consumers import wmclient to construct a client and
// then work with the interfaces declared here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
//	  "github.com/fivetwenty-io/webmaster-client/pkg/wmclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := wmclient.New(ctx, &webmaster.Config{Token: "y0_AgAAAA..."})
//	  if err != nil { log.Fatal(err) }
//
//	  hosts, err := cli.Hosts().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = hosts
//	}
//
// # Errors
//
// Every call returns one of a small set of error kinds, see KindOf:
//
//   - KindTransport: the request never produced a response (*TransportError).
//   - KindStatus: the API answered with a non-2xx status (*APIError). When the
//     body is a structured Webmaster error, APIError.Response carries its
//     ErrorCode.
//   - KindDecode: a 2xx body did not match the expected type (*DecodeError).
//
// Use IsNotFound, IsConflict, IsQuotaExceeded or HasErrorCode to branch on
// specific API errors.
//
// # Timestamps
//
// The API emits timestamps such as "2016-01-01T00:00:00,000+0300". Time and
// Date accept those as well as RFC 3339.
package webmaster

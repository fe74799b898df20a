// Package wmclient provides the primary entry point for constructing a
// Yandex Webmaster API v4 client that implements the webmaster.Client interface.
//
// It layers configuration, HTTP transport and OAuth authentication on top of
// the resource interfaces and types defined in the webmaster package. Most
// applications import wmclient to build a client, then use the returned
// webmaster.Client to reach the per-area clients: Hosts(), SearchQueries(),
// Recrawl() and so on.
//
// Quick start
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
//
//	  // With a token you already have:
//	  cli, err := wmclient.NewWithToken(ctx, "y0_AgAAAA...")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with full control over transport behaviour:
//	  cli, err = wmclient.New(ctx, &webmaster.Config{
//	    Token:    "y0_AgAAAA...",
//	    RetryMax: 3, // retries are off unless asked for
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  hosts, err := cli.Hosts().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = hosts
//	}
//
// # User ID
//
// Every host-scoped endpoint lives under /user/{user_id}. New resolves the ID
// with GET /user unless Config.UserID is already set.
//
// # Environment
//
// NewFromEnv reads YWM_TOKEN, YWM_API, YWM_USER_ID, YWM_AUTH_SCHEME,
// YWM_TIMEOUT and YWM_RETRY_MAX. See webmaster.ConfigFromEnv.
package wmclient

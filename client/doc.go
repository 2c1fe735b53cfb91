// Package client provides an immutable, admission-controlled HTTP
// client.
//
// A client is configured by deriving: every configuration method
// returns a copy, so a base client can be shared and specialized
// per endpoint without locks.
//
//	base, _ := client.New(client.Config{
//	    BaseURL:        "https://api.example.com",
//	    MaxConcurrency: 8,
//	})
//	users := client.JSON[User](base.Path("/users/{id}"))
//
//	res := users.PathParam("id", 42).GetAsync(ctx)
//	user, err := client.Await[User](ctx, res)
//
// Requests over the concurrency cap queue in FIFO order and dispatch
// as permits free up. Response bodies decode through an adaptive
// materializer: small bodies buffer and decode inline, large bodies
// stream through a background decoder.
package client

// Package httpclient executes the GET requests of a work list.
//
// [NewClient] builds a shared client with connection reuse across hosts.
// [Executor] sends one request per spec, bounded by an optional per-request
// deadline, and turns the result into a [runner.Outcome]:
//
//	exec := httpclient.NewExecutor(httpclient.NewClient(), 5*time.Second, provider)
//	outcome := exec.Execute(ctx, spec)
//
// Any response status, 5xx included, is a successful outcome. Only transport
// failures and deadline expiry set [runner.Outcome.Err].
//
// When a tracing provider is enabled every request is wrapped in a client
// span, and W3C trace context headers are injected if propagation is on.
package httpclient

// Package metrics exposes the Prometheus collectors shared by the dispatch
// pool and the HTTP server, plus a lightweight runtime memory reader used by
// the CLI's verbose output.
//
// All collectors live on a private registry owned by a Metrics value, so
// several instances (one per test, say) never collide on registration.
package metrics

/*
Package observability exposes build metrics for the data tree factory.

Metrics are recorded through domain.LifecycleHooks, so any Factory can be
instrumented without the builder knowing about Prometheus. Combine merges the
metric hooks with caller supplied ones.
*/
package observability

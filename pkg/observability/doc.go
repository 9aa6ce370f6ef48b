/*
Package observability provides lifecycle hooks for monitoring blinks invocations.

It includes Prometheus metrics, structured log lines and journal recording. Each
helper returns domain.LifecycleHooks; combine them with Merge and pass the result
to invoker.WithHooks.
*/
package observability

/*
Package observability exposes presenter activity as Prometheus metrics.

Metrics are fed by domain.LifecycleHooks, so they observe navigation without
the presenter knowing about them. Use Metrics.Hooks together with
domain.MergeHooks to attach them next to other hook sets.
*/
package observability

/*
Package observability provides tools for monitoring the tracer.

It turns explorer TraceHooks into Prometheus metrics and structured log
lines. Both are plain hook sets, so they combine with TraceHooks.Merge:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := metrics.Hooks().Merge(observability.LogHooks(logger))
	m, err := tracetm.New(ctx, path, tracetm.WithLifecycleHooks(hooks))
*/
package observability

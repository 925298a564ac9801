// Package metrics records build observability data.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check:
//
//	p := pipeline.New(cfg, runner) // metrics.NoopRecorder{}
//	p.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry.
// One-shot builds export that registry to a node-exporter textfile with
// WriteTextfile; watch mode can serve it over HTTP with HTTPHandler.
package metrics

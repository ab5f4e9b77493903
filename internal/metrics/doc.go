// Package metrics provides build observability for uibuild.
//
// Components receive a Recorder through dependency injection and default to NoopRecorder, so
// code paths never need nil checks:
//
//	pipeline := build.NewPipeline(cfg, transformers, bundler).WithRecorder(metrics.NoopRecorder{})
//
// PrometheusRecorder registers phase, build and per-file counters in a prometheus.Registry.
// The CLI can persist a registry after a build with WriteTextfile, which produces the
// node-exporter textfile format so CI hosts can scrape build timings.
package metrics

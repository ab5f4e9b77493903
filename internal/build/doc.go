// Package build provides the canonical build pipeline for a component library.
//
// A build runs five phases strictly in sequence: clean, ES-module outputs, CommonJS outputs,
// style entries and packed outputs. Each phase returns a PhaseResult instead of logging and
// discarding its failure; the orchestrator keeps going after a failed phase by default (or
// stops when fail-fast is set) and aggregates every failure into the Report.
//
// The package also defines sentinel errors that classify which step of a phase failed.
// They are always wrapped in a PhaseError together with the underlying cause.
package build

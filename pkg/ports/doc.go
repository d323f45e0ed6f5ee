/*
Package ports defines the driven ports (interfaces) of the tracer.

These interfaces decouple the exploration core from external implementations,
allowing machines to come from different sources and reports to be kept in
different backends.

# Key Interfaces

  - MachineLoader: resolves a machine reference into a MachineDefinition.
  - ReportStore: persists trace reports (memory, file, Redis).
*/
package ports

/*
Package domain contains the core models of the tracer.

It defines the machine description, transition rules, tape configurations and
the trace report. The package is pure and free of I/O so that loaders, stores
and transports can depend on it without pulling each other in.

# Key Entities

  - MachineDefinition: states, alphabets, start/accept/reject and ordered rules.
  - TransitionRule: (from, read) -> (to, write, move).
  - Configuration: an immutable tape snapshot rendered as "left,state,head,right".
  - Report: verdict, accepting path and exploration metrics.
*/
package domain

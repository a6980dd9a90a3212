/*
Package federation implements the passive control plane of the arcbridge
federation: the signal bus, the bounded registries, and the read-only
analysis built on top of them.

# Overview

Nothing in this package executes, authorizes, or dispatches anything to a
remote system. Producers emit typed signals, the bus distributes them to
in-process listeners, and the registries record commands, intents and
subscriptions for later inspection. A future execution layer is expected to
consume this state; until then the federation is observation and audit only.

# Core model

  - SignalBus: synchronous publish/subscribe hub for types.Event, invoking
    listeners in registration order with per-listener fault isolation
  - CommandQueue: append-only, bounded queue of types.Command
  - IntentRegistry: bounded registry of declared desired states
  - SubscriptionRegistry: bounded registry of channel registrations
  - ActionLog: bounded audit trail of recorded action schemas
  - State: composition root owning one instance of each of the above

# Derived views

Topology, divergence detection, action previews and federation reasons are
pure read-only projections of registry state. They never mutate anything and
carry an explicit "no execution" contract.

# Retention

Every registry enforces its retention cap at write time: once the cap is
exceeded the oldest entries are silently and permanently dropped. There is no
archival and no backpressure signal to the producer. All state is process
memory only and resets on restart.
*/
package federation

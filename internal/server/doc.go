/*
Package server manages HTTP server lifecycles: non-blocking start, graceful
shutdown, and system signal handling.

# Overview

Manager wraps net/http.Server and unifies listening, serving, shutdown, and
error propagation. SIGINT/SIGTERM handling is built in for graceful
production stops.

# Core types

  - Manager — holds the http.Server, net.Listener, and an asynchronous
    error channel; provides Start/Shutdown/WaitForShutdown.
  - Config — listen address, read/write/idle timeouts, max header size,
    and the graceful shutdown timeout.

# Capabilities

  - Non-blocking start: Start serves from a background goroutine.
  - Graceful shutdown: Shutdown drains requests within the configured
    timeout.
  - Signal handling: WaitForShutdown blocks on SIGINT/SIGTERM and then
    shuts down automatically.
  - Error propagation: Errors() exposes asynchronous server failures.
  - Status queries: IsRunning/Addr/BoundAddr.
*/
package server

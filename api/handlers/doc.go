/*
Package handlers implements the HTTP surface of the arcbridge control plane.

# Overview

Every endpoint is a thin translation layer: decode the request, call into
the federation state, encode the result. Handlers never execute anything on
behalf of a caller; they record, list, and derive. All handlers follow the
standard net/http interface.

# Core types

  - FederationHandler — command queue, intents, subscriptions, derived views
  - ActionsHandler    — action blueprints, previews, and intent routing
  - WhispererHandler  — operator text ingestion and relay to live observers
  - OperatorHandler   — single-operator identity and session endpoints
  - SigningHandler    — dev payload signing and verification
  - HealthHandler     — service health (/health, /healthz, /ready)
  - Response          — unified JSON envelope (success + data + error + timestamp)
  - ErrorInfo         — structured error with code, message, retryable flag

# Conventions

  - Unified responses via WriteSuccess / WriteError / WriteJSON
  - Request validation via DecodeJSONBody (1 MB limit + strict mode)
  - ErrorCode to HTTP status mapping (4xx/5xx)
  - Read endpoints degrade to empty collections rather than erroring
*/
package handlers

// Package types provides core types used across the arcbridge control plane.
// This package has ZERO dependencies on other arcbridge packages to avoid
// circular imports. All other packages should import types from here.
//
// The federation event envelope, the closed Signal and ActionType
// enumerations, and the registry record types (Command, Intent, Subscription)
// live here as pure data definitions. Nothing in this package executes,
// dispatches, or stores anything.
package types

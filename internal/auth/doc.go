// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

// Package auth provides credential verification and session management
// for the sportevents application.
//
// # Domain Types
//
// Domain types (User, Session) should be created using their respective
// constructors:
//   - NewUser - creates a User with a validated username and password hash
//   - NewSession - creates a Session with a validated user and expiry
//
// Direct struct initialization bypasses validation and may create invalid
// state. Repository and store implementations receive pre-validated types
// from these constructors.
//
// # Services
//
// Service types coordinate domain operations:
//   - Service - registration, login, logout, current-user resolution
//   - Manager - session issuance, resolution, and revocation
//   - LocalVerifier - username/password credential verification
//
// Services are created with New* constructors that validate dependencies.
package auth

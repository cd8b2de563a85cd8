// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the expected interfaces for Salted Challenge
// Response Authentication Mechanism (SCRAM) based password hashing.
// For the corresponding implementation, check the adapter layer.
//
// Interfaces should be defined based on the use cases requirements.
// The users use case only needs to turn a registration password into
// a hash string which can be persisted, and later decide whether a
// login password matches a persisted hash string. The full SCRAM
// client/server conversation (as defined by RFC 5802 and RFC 7677) is
// not needed because the password travels to this server over the REST
// API directly; SCRAM is used here for its standard salted hash string
// format alone. Since the produced hash string embeds the salt and the
// iterations count, verification can recompute the stored key from a
// candidate password deterministically without extra bookkeeping.
package scram

// Hasher represents the expectations from a SCRAM hasher
// implementation which for a specific underlying hash function
// (e.g., SHA1 or SHA256) computes the storedKey and serverKey values
// whenever its Hash method is called, and recomputes them for
// comparison whenever its Verify method is called.
// A PBKDF2 algorithm is computed in order to slow down a dictionary
// attack as detailed in RFC 5802.
type Hasher interface {
	// Hash computes a hash string following the standard scram hash
	// format, so it can be stored and used later for authentication.
	//
	// The pass argument must be non-empty. It will be normalized
	// according to the SASLprep profile (defined by RFC 4013) of the
	// stringprep algorithm (which is defined by RFC 3454) and any
	// failure in that normalization returns an error.
	//
	// The salt must contain a base64 encoding of the desired salt
	// bytes, otherwise, if an empty value is passed, a random salt
	// will be generated and used instead.
	// The iters must be at least equal to 4096. However, the RFC 7677
	// recommends to use 15000 or more.
	//
	// In absence of errors, a hashed string will be returned which
	// conforms to the following format.
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	Hash(pass, salt string, iters int) (string, error)

	// Verify parses the given hash string (as produced by Hash),
	// recomputes the stored credentials using the pass candidate
	// password with the embedded salt and iterations count, and
	// compares them in constant time. It returns nil if and only if
	// pass is the password which produced hash. A malformed hash
	// string is reported as an error too (not as a mismatch).
	Verify(pass, hash string) error
}

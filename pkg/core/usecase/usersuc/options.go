// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc

import (
	"errors"
	"fmt"
	"time"
)

// Option is a functional option for the users use case.
type Option func(uc *UseCase) error

// WithSessionTTL option configures a users UseCase instance in order
// to issue session tokens with the given validity duration instead of
// the default 30 days. This option may be passed to the New() function.
func WithSessionTTL(ttl time.Duration) Option {
	return func(uc *UseCase) error {
		if d := int64(ttl); d <= 0 {
			return fmt.Errorf("ttl (%d) is not positive", d)
		}
		if uc.sessionTTL != 0 {
			return errors.New("ttl is already configured")
		}
		uc.sessionTTL = ttl
		return nil
	}
}

// WithScramIterations option configures the PBKDF2 iterations count
// which is used when hashing account passwords. Values below the
// RFC 5802 minimum of 4096 are rejected. This option may be passed to
// the New() function.
func WithScramIterations(iters int) Option {
	return func(uc *UseCase) error {
		if iters < 4096 {
			return fmt.Errorf("iters (%d) is less than 4096", iters)
		}
		if uc.scramIters != 0 {
			return errors.New("iters is already configured")
		}
		uc.scramIters = iters
		return nil
	}
}

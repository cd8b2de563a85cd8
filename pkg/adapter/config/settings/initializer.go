// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

// Nil2Default overwrites the (*t) pointer, which should be nil,
// in order to point to a newly allocated T instance and initializes it
// with the given default value.
// If the (*t) pointer was not nil, Nil2Default will perform no action.
func Nil2Default[T any](t **T, def T) {
	if (*t) != nil {
		return
	}
	(*t) = &def
}

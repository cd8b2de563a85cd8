// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the vehicles use case.
type Option func(uc *UseCase) error

// WithDefaultPageSize option configures the page size which is used
// by the List use case when the caller provides no (usable) page size.
// This option may be passed to the New() function.
func WithDefaultPageSize(size int) Option {
	return func(uc *UseCase) error {
		if size <= 0 {
			return fmt.Errorf("page size (%d) is not positive", size)
		}
		if uc.defaultPageSize != 0 {
			return errors.New("page size is already configured")
		}
		uc.defaultPageSize = size
		return nil
	}
}

// WithImageLimits option configures the maximum accepted images count
// per create/update call and the maximum size of each image in bytes.
// This option may be passed to the New() function.
func WithImageLimits(count int, size int64) Option {
	return func(uc *UseCase) error {
		if count <= 0 {
			return fmt.Errorf("images count (%d) is not positive", count)
		}
		if size <= 0 {
			return fmt.Errorf("image size (%d) is not positive", size)
		}
		if uc.maxImages != 0 || uc.maxImageSize != 0 {
			return errors.New("image limits are already configured")
		}
		uc.maxImages = count
		uc.maxImageSize = size
		return nil
	}
}

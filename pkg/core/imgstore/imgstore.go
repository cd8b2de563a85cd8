// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package imgstore exports the expected interface for the vehicle
// images storage collaborator. The core layer only cares about turning
// an uploaded image stream into a storage-relative path which can be
// persisted on a vehicle record; where and how the bytes are kept is
// an adapter layer decision (see pkg/adapter/storage/localfs).
package imgstore

import (
	"context"
	"io"
)

// Upload describes one image file as received from a client, before
// it is handed to a Store. The Name is the client-provided file name
// (used for its extension only), the ContentType is the declared MIME
// type, and Size is the byte length of the content readable from Open.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Store represents the expectations from an image storage
// implementation.
type Store interface {
	// Save persists the content of the given upload under a unique
	// name and returns its storage-relative path. The returned path
	// is what gets persisted on vehicle records and later served to
	// clients under the public images route.
	Save(ctx context.Context, up Upload) (string, error)
}

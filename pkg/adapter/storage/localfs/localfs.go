// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package localfs presents the local filesystem implementation of the
// vehicle images store. Files are kept flat under one base directory
// which the REST layer also serves statically; vehicle records only
// persist paths relative to that directory, so the directory may move
// without touching the database.
//
// It implements the
// github.com/momeni/dealer-web/pkg/core/imgstore.Store interface.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/dealer-web/pkg/core/imgstore"
)

// Store persists uploaded images under a base directory.
type Store struct {
	dir string
}

// New instantiates a Store rooted at dir, creating the directory if
// it does not exist yet.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("images directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating images directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the base directory which this store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// Save persists the content of the given upload under a unique name,
// derived from the current time and a random suffix while keeping the
// original extension, and returns its storage-relative path.
// The client-provided name is used for its extension only, so a
// crafted file name cannot escape the base directory.
func (s *Store) Save(
	ctx context.Context, up imgstore.Upload,
) (string, error) {
	ext := strings.ToLower(filepath.Ext(up.Name))
	name := fmt.Sprintf(
		"%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext,
	)
	src, err := up.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload %q: %w", up.Name, err)
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, contextReader{ctx, src}); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("writing image file: %w", err)
	}
	return name, nil
}

// contextReader aborts an in-flight copy when its context is done, so
// a canceled upload request does not keep writing to disk.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}

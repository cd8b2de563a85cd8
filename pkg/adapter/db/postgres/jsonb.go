// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

// JSONStrings maps an ordered list of strings onto a JSONB column.
// A nil slice is persisted as an empty JSON array and a NULL column
// value is scanned back as an empty slice, so repositories never have
// to distinguish the two.
type JSONStrings []string

// Value implements the driver.Valuer interface.
func (js JSONStrings) Value() (driver.Value, error) {
	if js == nil {
		js = JSONStrings{}
	}
	b, err := json.Marshal([]string(js))
	if err != nil {
		return nil, fmt.Errorf("marshaling strings list: %w", err)
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface.
func (js *JSONStrings) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		*js = JSONStrings{}
		return nil
	default:
		return fmt.Errorf("unexpected JSONB column type: %T", src)
	}
	return json.Unmarshal(b, (*[]string)(js))
}

// GormDataType reports the column type for schema-less usages.
func (JSONStrings) GormDataType() string {
	return "jsonb"
}

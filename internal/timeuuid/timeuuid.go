//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package timeuuid builds time-ordered (version 1) UUIDs for trade ids.
//
// The identifiers carry a 60-bit timestamp with 100ns resolution, a clock
// sequence and a node id. Two ids built from the same instant differ in their
// clock sequence, so callers never need to de-duplicate timestamps.
package timeuuid

import (
	"bytes"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ClockSequences is the number of distinct ids FromTime can return for one
// timestamp.
const ClockSequences = 1 << 14

// FromTime returns a version 1 UUID whose embedded timestamp is t.
func FromTime(t time.Time) uuid.UUID {
	return uuid.UUID(gocql.UUIDFromTime(t))
}

// Time extracts the embedded timestamp of a version 1 UUID in UTC.
func Time(id uuid.UUID) time.Time {
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec).UTC()
}

// Compare orders two version 1 UUIDs by embedded timestamp, falling back to
// the raw bytes for equal timestamps. It returns -1, 0 or +1.
func Compare(a, b uuid.UUID) int {
	ta, tb := a.Time(), b.Time()
	switch {
	case ta < tb:
		return -1
	case ta > tb:
		return 1
	}
	return bytes.Compare(a[:], b[:])
}

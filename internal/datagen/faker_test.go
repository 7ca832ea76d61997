//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewFaker(t *testing.T) {
	f := NewFaker()
	if f == nil {
		t.Fatal("NewFaker returned nil")
	}
	if f.faker == nil {
		t.Fatal("faker field is nil")
	}
}

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	if f1.Seed() != seed {
		t.Errorf("Seed() = %d, want %d", f1.Seed(), seed)
	}

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
	}
	if f1.UUID() != f2.UUID() {
		t.Error("Same seed produced different UUIDs")
	}
}

func TestFakerInt(t *testing.T) {
	f := NewFakerWithSeed(1)
	for i := 0; i < 1000; i++ {
		v := f.Int(1, 500)
		if v < 1 || v > 500 {
			t.Fatalf("Int(1, 500) out of range: %d", v)
		}
	}
}

func TestFakerMoney(t *testing.T) {
	f := NewFakerWithSeed(2)
	lo := decimal.RequireFromString("0.10")
	hi := decimal.RequireFromString("100000.00")

	for i := 0; i < 1000; i++ {
		v := f.Money(0.10, 100000.00)
		if v.LessThan(lo) || v.GreaterThan(hi) {
			t.Fatalf("Money out of range: %s", v)
		}
		if v.Exponent() < -2 {
			t.Fatalf("Money has more than two decimals: %s", v)
		}
	}
}

func TestFakerCount(t *testing.T) {
	f := NewFakerWithSeed(3)
	for i := 0; i < 1000; i++ {
		v := f.Count(1, 5000)
		if !v.IsInteger() {
			t.Fatalf("Count is not whole: %s", v)
		}
		if v.LessThan(decimal.NewFromInt(1)) || v.GreaterThan(decimal.NewFromInt(5000)) {
			t.Fatalf("Count out of range: %s", v)
		}
	}
}

func TestFakerUUID(t *testing.T) {
	f := NewFakerWithSeed(4)
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		s := f.UUID()
		if len(s) != 36 {
			t.Fatalf("UUID length = %d, want 36: %s", len(s), s)
		}
		u, err := uuid.Parse(s)
		if err != nil {
			t.Fatalf("UUID does not parse: %v", err)
		}
		if u.Version() != 4 {
			t.Errorf("UUID version = %d, want 4", u.Version())
		}
		if _, dup := seen[s]; dup {
			t.Fatalf("Duplicate UUID %s", s)
		}
		seen[s] = struct{}{}
	}
}

func TestFakerDay(t *testing.T) {
	f := NewFakerWithSeed(5)
	start := time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2013, 1, 8, 0, 0, 0, 0, time.UTC)

	hit := make(map[int]bool)
	for i := 0; i < 500; i++ {
		d := f.Day(start, 7)
		if d.Before(start) || !d.Before(end) {
			t.Fatalf("Day out of window: %v", d)
		}
		if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 {
			t.Fatalf("Day is not a day boundary: %v", d)
		}
		hit[d.YearDay()] = true
	}
	if len(hit) != 7 {
		t.Errorf("Expected all 7 days to be drawn, got %d", len(hit))
	}
}

func TestChoose(t *testing.T) {
	f := NewFakerWithSeed(6)
	items := []string{"buy", "sell"}
	counts := make(map[string]int)
	for i := 0; i < 200; i++ {
		counts[Choose(f, items)]++
	}
	if counts["buy"] == 0 || counts["sell"] == 0 {
		t.Errorf("Choose never picked one of the items: %v", counts)
	}

	if got := Choose(f, []int{}); got != 0 {
		t.Errorf("Choose on empty slice = %d, want zero value", got)
	}
}

func TestProgressReporter(t *testing.T) {
	p := NewProgressReporter("trades_by_a_d", 25, 10)
	p.Update(10)
	p.Update(10)
	p.Update(5)
	p.Done()

	if p.Rows() != 25 {
		t.Errorf("Rows() = %d, want 25", p.Rows())
	}
	if p.Batches() != 3 {
		t.Errorf("Batches() = %d, want 3", p.Batches())
	}
}

func TestProgressReporterZeroInterval(t *testing.T) {
	p := NewProgressReporter("accounts_by_user", 0, 0)
	p.Update(1)
	if p.Rows() != 1 {
		t.Errorf("Rows() = %d, want 1", p.Rows())
	}
}

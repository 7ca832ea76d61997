//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen provides data generation utilities.
package datagen

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// Faker provides fake data generation using gofakeit. Every random choice a
// seeding run makes goes through one Faker so a seed reproduces the run.
type Faker struct {
	faker *gofakeit.Faker
	seed  uint64
}

// NewFaker creates a new Faker with a random seed.
func NewFaker() *Faker {
	return NewFakerWithSeed(uint64(time.Now().UnixNano()))
}

// NewFakerWithSeed creates a new Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
		seed:  seed,
	}
}

// Seed returns the seed the Faker was created with.
func (f *Faker) Seed() uint64 {
	return f.seed
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Float64 generates a random float64 between min and max.
func (f *Faker) Float64(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Money generates a decimal amount uniformly distributed between min and
// max, rounded to cents. Both bounds must carry at most two decimals.
func (f *Faker) Money(min, max float64) decimal.Decimal {
	d := decimal.NewFromFloat(f.Float64(min, max)).Round(2)
	lo, hi := decimal.NewFromFloat(min), decimal.NewFromFloat(max)
	if d.LessThan(lo) {
		return lo.Round(2)
	}
	if d.GreaterThan(hi) {
		return hi.Round(2)
	}
	return d
}

// Count generates a whole-number decimal between min and max (inclusive).
func (f *Faker) Count(min, max int) decimal.Decimal {
	return decimal.NewFromInt(int64(f.Int(min, max)))
}

// UUID generates a random version 4 UUID in canonical string form.
func (f *Faker) UUID() string {
	return f.faker.UUID()
}

// Day returns start shifted by a random whole number of days in
// [0, days).
func (f *Faker) Day(start time.Time, days int) time.Time {
	return start.AddDate(0, 0, f.Int(0, days-1))
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}

// Package models defines the core domain models for Hati Tayo.
//
// # Models
//
//   - User: a registered account (or an invited stand-in from the
//     contacts book) identified by a stable id
//   - Group: a named, persistent set of users who share recurring expenses
//   - Transaction: a single recorded shared expense, immutable once created
//   - Share: one participant's owed-or-paid portion of a transaction,
//     the only mutable settlement record in the system
//
// # Design principles
//
//  1. Relationships use id strings, never pointers, to avoid circular
//     references between entities.
//  2. A Transaction owns its Share set exclusively; no other entity
//     duplicates settlement state.
//  3. Amounts are PHP throughout (single currency); float64 matches the
//     observed precision of the system this replaces.
package models

// Package models defines the core domain models for Planio.
//
// # Entities
//
//   - User: a registered account; every other entity is owned by exactly one user
//   - Wallet: a named money container with a running balance
//   - Transaction: a single income/expense/transfer event affecting one or two wallets
//   - SharedExpense: a group expense with per-participant shares
//   - Habit: a tracked habit with a set of completion dates
//   - Debt: money lent to or borrowed from a counterparty
//   - Task, Note, SemesterConfig, TimetableEntry, Assignment, Exam: planner records
//
// # Design Principles
//
//  1. Money fields use decimal.Decimal so apply/reverse cycles are exact; transaction
//     amounts are stored non-negative with direction carried by the type field.
//  2. Relationships use ID strings instead of pointers to avoid circular references.
//  3. Derived values (habit streaks, debt status) are recomputed on read, never stored.
package models

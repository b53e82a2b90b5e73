// Package beancountchile converts statements from Chilean banks into
// beancount ledger entries. It is designed to be deterministic and
// auditable: the same statement, account mapping, and categorizer always
// produce the same entries, ready to be reviewed and committed to a
// plain-text ledger.
//
// The core functionalities include:
//   - Statement Model: A bank-agnostic representation of an account or
//     credit-card statement (holder, period, balances, and raw movements)
//     that extractors fill in and the pipeline consumes.
//   - Entry Construction: Turning raw movements into balanced beancount
//     transactions, applying a user-supplied categorizer for counterpart
//     accounts, splits, and extra metadata.
//   - Balance Verification: Checking the running balance column of account
//     statements and emitting a closing balance assertion.
//   - Encoding: Rendering entries as beancount text or as JSONL for
//     downstream tooling.
//
// Per-institution extractors live in subpackages (bancochile for Banco de
// Chile), registered behind the Importer interface so the beanchile
// command can route a document to the importer that recognizes it.
package beancountchile

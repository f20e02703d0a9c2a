// Package credentials persists the single bearer credential the client holds.
//
// A Credential is the token plus its absolute expiry and transport flags. The
// Store contract is deliberately error-free: a storage failure is logged and
// the credential is reported absent, which callers already handle as
// "anonymous". Expiry is checked lazily on Get; an expired record is dropped
// at that point.
//
// Two implementations exist: SQLiteStore (the metadata table of the local
// database, one key per attribute, replaced atomically in a transaction) and
// MemoryStore (process lifetime only, used by tests and -ephemeral runs).
package credentials

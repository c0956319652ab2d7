// Package store defines interfaces for persisting boards, their ordered
// columns, and cards. The interfaces abstract the underlying storage so the
// ordering rules in the service layer stay independent of specific database
// technologies. Every store can be rebound to a *sql.Tx so multi-statement
// operations run atomically through RunInTransaction.
package store

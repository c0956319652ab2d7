// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Every structural change to a board runs inside one transaction opened with
// store.RunInTransaction:
//
//   - ReorderColumns validates a complete permutation of a board's columns and
//     applies it with a single bulk update, rejecting the write when the number
//     of updated rows shows that another transaction changed the board.
//   - DeleteColumn removes a column's cards, then the column, then closes the
//     gap it left so positions stay dense.
//
// Expected failures (not found, invalid ordering, concurrent modification) are
// returned as the store and domain sentinels so callers can match them with
// errors.Is. Anything else is wrapped in a ColumnServiceError.
package service

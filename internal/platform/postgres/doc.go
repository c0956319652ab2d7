// Package postgres provides PostgreSQL implementations of the board, column,
// and card stores defined in the internal/store package, together with the
// embedded goose migrations that create their schema.
//
// Column positions are protected in the schema by a deferrable unique
// constraint on (board_id, position), so a single UPDATE can permute
// positions freely and uniqueness is checked at commit.
package postgres

// Package models defines the database entities of the pricing feature:
// the catalog products table (owned by the external inventory importer)
// and the append-only price history table.
package models

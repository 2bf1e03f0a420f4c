package scoredb

import (
	"database/sql"
	"strconv"
)

// ToNullString converts a string to sql.NullString, treating "" as NULL.
func ToNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullStringOrEmpty returns the string value if valid, otherwise an empty string.
func NullStringOrEmpty(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// ParseNullFloat parses a float from a query-string value, returning
// NULL for empty or malformed input.
func ParseNullFloat(s string) sql.NullFloat64 {
	if s == "" {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

// NullFloatFromPtr converts an optional float to sql.NullFloat64.
func NullFloatFromPtr(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// PtrFromNullFloat converts sql.NullFloat64 back to an optional float.
func PtrFromNullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

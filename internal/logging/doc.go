// Package logging wraps zerolog behind a small Logger interface so the
// bigcalc components log with typed fields and tests can swap the backend.
package logging

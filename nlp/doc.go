// Package nlp turns short free-text transit questions in German, Italian or
// English into structured queries, and ranks stop candidates returned by the
// backend.
package nlp

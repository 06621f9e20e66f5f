// Package suedtirolmobil exposes the South Tyrol public transport client as
// a small JSON HTTP API: stop search, departure boards and trip planning.
package suedtirolmobil

// Package world owns the Hawkins Lab world state: the single JSON
// document holding the gate flag, monsters, energy spikes, inventory,
// experiments, evidence, and the request log.
//
// The document lives behind the Store interface (Load/Save a whole
// document) with three backends: a JSON file rewritten wholesale on
// every mutation, a single-row SQLite table, and an in-memory copy for
// tests. Mutators on World perform a load-mutate-save round trip per
// operation and persist before returning.
//
// Known limitation: load-then-save is a read-modify-write race under
// concurrent requests. The playground assumes a single process and
// uncoordinated writers; two simultaneous mutations can lose an update.
// This is deliberate and documented rather than locked away.
package world

// Package device owns the authoritative directory of controllable devices.
//
// The Directory keeps an in-memory, insertion-ordered cache backed by a
// SQLite repository. All state changes flow through its mutation methods,
// which validate capability and range constraints before committing, so a
// device never holds a temperature outside its bounds or a mode its type
// does not support.
//
// Free-text device references ("bedroom light", "ac", "kitchen") are
// resolved against the directory by the two-tier resolver: exact name
// match first, then substring/type/room fallback in directory order.
package device

// Package energy simulates household electricity usage.
//
// The simulator holds a rolling in-memory window of usage samples
// following a time-of-day profile (morning and evening peaks), plus a
// modelled solar output and indoor environment. Samples are optionally
// mirrored to a time-series backend for long-term retention; the
// in-memory window serves the dashboard history and stats endpoints.
package energy

// Package influxdb mirrors simulated energy and environment telemetry
// into InfluxDB.
//
// Writes are non-blocking and batched; failures surface through an
// error callback rather than the write path. The mirror is optional and
// the rest of the system works identically without it.
package influxdb

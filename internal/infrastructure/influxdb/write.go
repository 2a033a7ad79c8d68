package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteEnergySample records one simulated energy reading.
//
// The write is non-blocking; points are batched and sent asynchronously.
//
// Example:
//
//	client.WriteEnergySample(3.42, 1.05)
func (c *Client) WriteEnergySample(currentKW, solarKW float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"energy",
		map[string]string{
			"source": "simulator",
		},
		map[string]interface{}{
			"current_kw": currentKW,
			"solar_kw":   solarKW,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteEnvironmentSample records one simulated environment reading.
func (c *Client) WriteEnvironmentSample(temperatureC, humidityPct float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"environment",
		map[string]string{
			"source": "simulator",
		},
		map[string]interface{}{
			"temperature_c": temperatureC,
			"humidity_pct":  humidityPct,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
// Tags should stay low cardinality; fields carry the data.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

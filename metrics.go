// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

package wirecall

import "expvar"

// endpointMetrics record dispatch and call activity counters.
type endpointMetrics struct {
	callIn        expvar.Int // inbound call packets dispatched to a descriptor
	callOut       expvar.Int // outbound call packets built by Invoke
	responseIn    expvar.Int // inbound response packets dispatched
	responseOut   expvar.Int // responses sent automatically on behalf of handlers
	packetIgnored expvar.Int // packets discarded for an unknown function ID or type
	callUnbound   expvar.Int // inbound calls that found no handler bound

	emap *expvar.Map
}

var metrics = newEndpointMetrics()

func newEndpointMetrics() *endpointMetrics {
	m := &endpointMetrics{emap: new(expvar.Map)}
	m.emap.Set("calls_in", &m.callIn)
	m.emap.Set("calls_out", &m.callOut)
	m.emap.Set("responses_in", &m.responseIn)
	m.emap.Set("responses_out", &m.responseOut)
	m.emap.Set("packets_ignored", &m.packetIgnored)
	m.emap.Set("calls_unbound", &m.callUnbound)
	return m
}

// Metrics returns the metrics map shared by all endpoints in the process.
// It is safe for the caller to add additional metrics to the map.
func Metrics() *expvar.Map { return metrics.emap }

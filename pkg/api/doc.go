// Package api defines the wire messages of the settleup.v1 services.
//
// Messages are plain Go structs encoded as JSON. Money amounts travel as
// decimal strings ("12.50") so no precision is lost in transit.
package api

// Package api defines the request and response messages of the CoHouse
// Connect services. Messages are encoded as JSON (see apiconnect.Codec);
// every field is explicitly typed so malformed payloads fail on decode.
package api

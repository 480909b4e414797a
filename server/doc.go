// Package server exposes the search engine over HTTP.
//
// The API is a thin JSON layer: handlers parse and default the query
// parameters, call the engine or syncer, and map domain errors onto
// status codes. All ranking and corpus semantics live below it.
package server

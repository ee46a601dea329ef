// Package provider implements candidate providers: the abstraction the
// resolver queries for candidate target entries.
//
// Static serves bounded in-memory candidate sets and is symmetric over
// every loaded system, which makes reverse translation work without any
// special casing. WHOClient talks to the live WHO ICD-11 API. Cached
// and RedisCache wrap any provider with an in-process LRU or a shared
// Redis cache respectively; both degrade rather than fail.
package provider

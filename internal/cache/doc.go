// Package cache provides a byte-bounded LRU cache for blob contents.
//
// Entries are keyed by blob name. The cache enforces its own capacity and,
// when given a resource.Controller, also reserves every cached byte against
// the controller's memory limit. A value the controller refuses is simply
// not cached.
package cache

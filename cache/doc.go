// Package cache keeps parsed track files in memory between loads.
//
// Entries are keyed by absolute file path and carry a content digest.
// A lookup with a different digest is a miss and drops the stale entry,
// so a file that changed on disk is parsed again.
//
// The cache is split into shards, each with its own lock and LRU list,
// so concurrent loader workers rarely contend.
package cache

// Package track loads GPS tracks for rendering.
//
// GPX files are parsed with gpxgo, reduced by a dwell filter that drops
// points recorded while standing still, and merged into one time-ordered
// sequence. A Loader reads whole directories concurrently and can keep
// parse results in memory (package cache) and on disk (Store, SQLite).
package track

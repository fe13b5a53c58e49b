// Package parallel provides the work-stealing worker pool used to parse
// track files concurrently.
package parallel

// Package timefmt chooses between 12 and 24 hour clock labels, optionally
// from the system locale.
package timefmt

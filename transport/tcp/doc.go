// Package tcp implements listener construction for httpool with optional
// platform socket options. Accepting and connection handling belong to the
// server package; this package only binds.
package tcp

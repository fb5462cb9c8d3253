// Package notify publishes the outcome of a preprocessing run to a
// socket.io endpoint so build dashboards can follow it.
package notify

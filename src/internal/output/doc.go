// Package output renders a normalized result and delivers it: to a file with an
// optional .md5 sidecar, or to an HTTP endpoint as "ip:port#tag" lines.
package output

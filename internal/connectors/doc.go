// Package connectors holds the sources that feed documents into the
// service from outside the HTTP API. Each connector lives in its own
// subpackage; filesystem watches a drop folder and uploads what lands in it.
package connectors

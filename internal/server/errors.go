// Package server serves the built catalog site and a read-only JSON API
// over the resolved project records.
package server

import "errors"

// ErrProjectNotFound indicates no record has the requested id.
var ErrProjectNotFound = errors.New("project not found")

// Package auth handles the gateway's credential passthrough. The gateway
// performs no authentication of its own: it only requires that an
// Authorization header is present and forwards its value, opaque and
// unmodified, to the backend, which is the actual authority.
package auth

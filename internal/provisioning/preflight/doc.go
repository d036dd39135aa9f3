// Package preflight prepares a project for lab provisioning: it enables the
// backend services the lab depends on and grants the build identity its
// project role.
package preflight

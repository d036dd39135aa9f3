// Package keygen generates RSA key pairs for SSH authentication.
//
// Keys are produced in PEM format (private) and OpenSSH authorized_keys
// format (public), suitable for publishing to a Compute Engine instance
// through its ssh-keys metadata.
package keygen

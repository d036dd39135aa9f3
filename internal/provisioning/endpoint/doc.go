// Package endpoint waits for the pipeline frontend to register with the
// inverting proxy and reads back its public hostname.
package endpoint

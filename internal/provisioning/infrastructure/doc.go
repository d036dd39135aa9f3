// Package infrastructure provisions the lab's managed infrastructure by
// delegating to a terraform root module and reading its outputs back.
package infrastructure

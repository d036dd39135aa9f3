// Package naming provides consistent naming functions for lab resources.
//
// Everything provisioned for an environment derives from the operator's
// name prefix: the notebook workstation is {prefix}-notebook and build
// sources are staged under the project's _cloudbuild bucket. Deriving
// every name from the prefix keeps resources easy to identify and clean
// up by hand.
package naming

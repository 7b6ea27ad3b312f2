// SPDX-License-Identifier: MPL-2.0

// Package types holds small validated primitives shared by the library and
// the CLI.
package types

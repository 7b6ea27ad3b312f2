// SPDX-License-Identifier: MPL-2.0

// Package releasenotes extracts the section of a change-log that belongs to a
// version and assembles release notes around it.
//
// A change-log is a plain text document where each line starting with "# "
// opens a section labeled by the rest of the line:
//
//	# v1.2.0
//
//	- Add notes command
//
//	# v1.1.0
//	...
//
// A section matches a version when its label is a prefix of the version
// string, so "# v1.2.0" serves v1.2.0 as well as v1.2.0-rc.3.gabc1234. Only the
// first matching section is used. No other markup is interpreted.
package releasenotes

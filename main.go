// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/buildinfo/cmd/buildinfo"

func main() {
	cmd.Execute()
}

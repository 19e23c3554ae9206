// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/a11yterm/a11yterm/cmd/a11yterm"

func main() {
	cmd.Execute()
}

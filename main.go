// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/mgattozzi/freight/cmd/freight"

func main() {
	cmd.Execute()
}

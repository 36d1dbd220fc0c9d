// Copyright © 2019 One Concern

package main

import (
	"github.com/oneconcern/checkpoint/cmd/checkpoint/cmd"
)

func main() {
	cmd.Execute()
}

// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"os"

	"github.com/dalzilio/symmetrize/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}

//go:build tools

package main

import (
	_ "mvdan.cc/gofumpt"
)

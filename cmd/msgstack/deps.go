package main

import "github.com/cristianoliveira/msgstack/internal/core"

var coreClient = core.NewCore()

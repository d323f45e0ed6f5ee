/*
Package tracetm traces nondeterministic single-tape Turing machines.

A machine is loaded once and then any number of input strings can be traced
against it. Each trace explores the tree of configurations breadth-first, so the
shortest accepting computation is found first, and stops at a caller supplied
depth bound because a Turing machine is not guaranteed to halt.

# Key Features

  - Machine descriptions in the CSV row format, YAML or JSON documents, a Loam library or the dsl package.
  - Reports with the verdict, the accepting path and exploration metrics.
  - Pluggable report stores (memory, file, Redis).
  - Lifecycle hooks for logging and Prometheus metrics.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/tracetm"
	)

	func main() {
		ctx := context.Background()

		machine, err := tracetm.New(ctx, "./machines/a-plus.csv")
		if err != nil {
			log.Fatal(err)
		}

		record, err := machine.Trace(ctx, "aaa", 100)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(record.Report.Verdict)
	}

The cmd/tracetm binary wraps the same API in an interactive loop, an HTTP
server and an MCP server.
*/
package tracetm

// cmd/inspect/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"tile-engine/engine"
)

var weightPath = flag.String("weights", "", "Weight blob to summarize")

func main() {
	flag.Parse()
	if *weightPath == "" {
		fmt.Println("Usage:")
		flag.PrintDefaults()
		os.Exit(2)
	}

	tables, err := engine.ReadBlobFile(*weightPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inspect: %v\n", err)
		os.Exit(1)
	}

	kind := "plain"
	if len(tables) == 3*engine.TableCount {
		kind = "tc"
	}
	fmt.Printf("%s: %d tables (%s snapshot)\n", *weightPath, len(tables), kind)

	for i, tab := range tables {
		var min, max float32
		var sum float64
		nonzero := 0
		for _, w := range tab {
			if w != 0 {
				nonzero++
			}
			if w < min {
				min = w
			}
			if w > max {
				max = w
			}
			sum += float64(w)
		}
		mean := 0.0
		if len(tab) > 0 {
			mean = sum / float64(len(tab))
		}
		fmt.Printf("table %2d: %9d entries, %8.4f%% nonzero, min %12.4f mean %12.6f max %12.4f\n",
			i, len(tab), 100*float64(nonzero)/float64(engine.Max(len(tab), 1)), min, mean, max)
	}
}

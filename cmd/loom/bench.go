package main

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/loomdev/loom/pkg/dom"
	"github.com/loomdev/loom/pkg/loom"
)

type benchProfile struct {
	Name     string
	ListSize int
	Updates  int
}

var benchProfiles = map[string]benchProfile{
	"fast":     {Name: "fast", ListSize: 20, Updates: 1_000},
	"standard": {Name: "standard", ListSize: 100, Updates: 10_000},
	"stress":   {Name: "stress", ListSize: 500, Updates: 50_000},
}

func benchCmd() *cobra.Command {
	var profileName string
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run mount/update benchmarks against an in-process tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, ok := benchProfiles[profileName]
			if !ok {
				return fmt.Errorf("unknown profile %q", profileName)
			}
			runBench(profile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&profileName, "profile", "p", "standard", "bench profile: fast, standard, stress")
	return cmd
}

var (
	benchList = []string{"<ul>", "</ul>"}
	benchRow  = []string{`<li class="`, `">`, "</li>"}
)

func runBench(profile benchProfile) {
	container := dom.NewElement("div")
	rng := rand.New(rand.NewSource(1))

	items := make([]any, profile.ListSize)
	keys := make([]int, profile.ListSize)
	for i := range keys {
		keys[i] = i
	}

	latencies := make([]time.Duration, 0, profile.Updates)
	start := time.Now()
	for pass := 0; pass < profile.Updates; pass++ {
		// Shuffle a couple of rows per pass to exercise keyed moves.
		a, b := rng.Intn(len(keys)), rng.Intn(len(keys))
		keys[a], keys[b] = keys[b], keys[a]
		for i, k := range keys {
			items[i] = loom.HTML(benchRow, "row", strconv.Itoa(k)).WithKey(k)
		}
		t0 := time.Now()
		loom.Mount(loom.HTML(benchList, items), container)
		latencies = append(latencies, time.Since(t0))
	}
	elapsed := time.Since(start)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	p50 := latencies[len(latencies)/2]
	p99 := latencies[len(latencies)*99/100]

	fmt.Printf("profile:   %s\n", profile.Name)
	fmt.Printf("rows:      %d\n", profile.ListSize)
	fmt.Printf("updates:   %d in %s (%.0f/s)\n", profile.Updates, elapsed.Round(time.Millisecond), float64(profile.Updates)/elapsed.Seconds())
	fmt.Printf("latency:   p50=%s p99=%s\n", p50, p99)
}

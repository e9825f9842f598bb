// Command e20sim executes an assembled E20 program to completion and,
// when a --cache configuration is given, emits a cache access trace
// on stdout (spec.md §6; SPEC_FULL.md §4.K).
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/e20sim/e20sim/pkg/cache"
	"github.com/e20sim/e20sim/pkg/e20"
	"github.com/e20sim/e20sim/pkg/loader"
	"github.com/e20sim/e20sim/pkg/runstats"
	"github.com/e20sim/e20sim/pkg/trace"
)

const usage = `Usage: e20sim [--cache SIZE,ASSOC,BLOCKSIZE[,SIZE,ASSOC,BLOCKSIZE]] FILENAME

  FILENAME         path to an assembled E20 machine-code file
  --cache CACHE    comma-separated cache config: one level (3 ints)
                    or two levels (6 ints, L1 then L2)
  --stats-json PATH  write run counters as JSON after a clean halt
  --stats-gob PATH   write run counters as gob after a clean halt
`

func main() {
	var cacheStr, statsJSON, statsGob string

	root := &cobra.Command{
		Use:           "e20sim FILENAME",
		Short:         "E20 cycle-behavioral simulator with cache trace generation",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], cacheStr, statsJSON, statsGob)
		},
	}
	root.Flags().StringVar(&cacheStr, "cache", "", "cache config: 3 or 6 comma-separated integers")
	root.Flags().StringVar(&statsJSON, "stats-json", "", "optional path to write run counters as JSON")
	root.Flags().StringVar(&statsGob, "stats-gob", "", "optional path to write run counters as gob")

	// The spec requires -h/--help to exit 1 (§6), unlike cobra's
	// default exit-0 help behavior, so help is handled explicitly.
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	})

	if err := root.Execute(); err != nil {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func run(filename, cacheStr, statsJSON, statsGob string) error {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Can't open file %s\n", filename)
		os.Exit(1)
	}
	defer f.Close()

	mem, err := loader.Load(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var hierarchy *cache.Hierarchy
	var stats *runstats.Stats
	if cacheStr != "" {
		l1, l2, err := parseCacheConfig(cacheStr)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		emit := trace.NewEmitter(os.Stdout)
		stats = runstats.NewStats()
		hierarchy = cache.NewHierarchy(emit, stats, l1, l2)
	}

	machine := e20.NewMachine(e20.NewMemory(mem))
	var cycles int
	if hierarchy != nil {
		cycles = machine.Run(hierarchy)
	} else {
		cycles = machine.Run(nil)
	}
	if stats != nil {
		stats.Cycles = cycles
	}

	if statsJSON != "" {
		if err := writeStatsFile(statsJSON, func(f *os.File) error { return runstats.WriteJSON(f, statsOrEmpty(stats)) }); err != nil {
			return err
		}
	}
	if statsGob != "" {
		if err := writeStatsFile(statsGob, func(f *os.File) error { return runstats.WriteGob(f, statsOrEmpty(stats)) }); err != nil {
			return err
		}
	}

	return nil
}

func statsOrEmpty(s *runstats.Stats) *runstats.Stats {
	if s == nil {
		return runstats.NewStats()
	}
	return s
}

func writeStatsFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

// parseCacheConfig parses the --cache value into one or two Configs,
// per spec.md §6: exactly 3 or 6 comma-separated integers.
func parseCacheConfig(s string) (l1 cache.Config, l2 *cache.Config, err error) {
	parts := strings.Split(s, ",")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, convErr := strconv.Atoi(strings.TrimSpace(p))
		if convErr != nil {
			return cache.Config{}, nil, fmt.Errorf("Invalid cache config")
		}
		nums = append(nums, n)
	}

	switch len(nums) {
	case 3:
		l1 = cache.Config{Name: "L1", Size: nums[0], Assoc: nums[1], BlockSize: nums[2]}
	case 6:
		l1 = cache.Config{Name: "L1", Size: nums[0], Assoc: nums[1], BlockSize: nums[2]}
		l2v := cache.Config{Name: "L2", Size: nums[3], Assoc: nums[4], BlockSize: nums[5]}
		l2 = &l2v
	default:
		return cache.Config{}, nil, fmt.Errorf("Invalid cache config")
	}

	if err := l1.Validate(); err != nil {
		return cache.Config{}, nil, err
	}
	if l2 != nil {
		if err := l2.Validate(); err != nil {
			return cache.Config{}, nil, err
		}
	}
	return l1, l2, nil
}

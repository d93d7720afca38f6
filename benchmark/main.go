// Package main provides a performance benchmarking tool for the teamcap CLI.
// It measures execution times across snapshot files and command types,
// running each test multiple times with run tracking disabled and with SQLite tracking,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - teamcap binary installed and available in PATH
// - Snapshot files (*.yaml, *.yml or *.json) in the specified directory
//
// Usage: go run benchmark/main.go [snapshot-dir]
//
//	snapshot-dir: Directory containing team snapshots
package main

import (
	"encoding/csv"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (untracked average, cold run and average of warm tracked runs).
type BenchmarkResult struct {
	Snapshot     string
	Command      string
	UntrackedAvg string
	ColdTime     string
	WarmTime     string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	SnapshotDir   string
	Timeout       time.Duration
	UntrackedRuns int
	TrackedRuns   int
	Snapshots     []string
	Commands      map[string]BenchmarkCommand
}

// BenchmarkCommand is a teamcap invocation: subcommand words, then the snapshot, then Extra.
type BenchmarkCommand struct {
	Words []string
	Extra []string
}

// benchmarkCommands lists the commands to time.
var benchmarkCommands = map[string]BenchmarkCommand{
	"workload": {Words: []string{"workload"}},
	"velocity": {Words: []string{"velocity"}},
	"predict":  {Words: []string{"predict"}},
	"whatif":   {Words: []string{"whatif", "add-scope"}, Extra: []string{"--points", "5"}},
	"coverage": {Words: []string{"coverage"}},
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [snapshot-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		SnapshotDir:   os.Args[1],
		Timeout:       30 * time.Second,
		UntrackedRuns: 5,
		TrackedRuns:   6,
		Commands:      benchmarkCommands,
	}

	snapshots, err := checkPrerequisites(config)
	if err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}
	config.Snapshots = snapshots

	// Clear the run store using teamcap runs clear
	fmt.Printf("Clearing recorded runs...\n")
	clearCmd := exec.Command("teamcap", "runs", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear runs: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Runs cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the teamcap binary exists and returns the snapshots to benchmark.
func checkPrerequisites(config BenchmarkConfig) ([]string, error) {
	if _, err := exec.LookPath("teamcap"); err != nil {
		return nil, fmt.Errorf("teamcap binary not found in PATH")
	}

	entries, err := os.ReadDir(config.SnapshotDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read snapshot directory %s: %w", config.SnapshotDir, err)
	}

	var snapshots []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
			snapshots = append(snapshots, filepath.Join(config.SnapshotDir, entry.Name()))
		}
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no snapshots found in %s", config.SnapshotDir)
	}
	return snapshots, nil
}

// runBenchmarks executes all benchmark tests across the snapshots
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d snapshots, %v timeout, untracked: %d runs, tracked: %d runs\n",
		len(config.Snapshots), config.Timeout, config.UntrackedRuns, config.TrackedRuns)

	commands := slices.Sorted(maps.Keys(config.Commands))

	for _, snapshot := range config.Snapshots {
		fmt.Printf("Benchmarking %s\n", filepath.Base(snapshot))
		for _, name := range commands {
			results = append(results, runBenchmarkSuite(config, snapshot, name))
		}
	}

	return results
}

// runBenchmarkSuite runs both untracked and tracked benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, snapshot, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, filepath.Base(snapshot))

	// Helper to run a benchmark phase
	runPhase := func(runsBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, snapshot, command, runsBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: Untracked runs
	_, untrackedAvg := runPhase("none", config.UntrackedRuns, "Untracked")

	// Phase 2: Tracked runs
	coldTime, warmAvg := runPhase("sqlite", config.TrackedRuns, "Tracked")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  Untracked average: %s, Cold time: %s, Warm average: %s\n", untrackedAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Snapshot:     filepath.Base(snapshot),
		Command:      command,
		UntrackedAvg: untrackedAvg,
		ColdTime:     coldTimeStr,
		WarmTime:     warmAvg,
	}
}

// runBenchmark executes a teamcap command multiple times with the given runs backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, snapshot, command, runsBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	bc := config.Commands[command]
	args := slices.Concat(bc.Words, []string{snapshot}, bc.Extra,
		[]string{"--runs-backend", runsBackend, "--output", "json"})

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("teamcap", args...)

		done := make(chan bool, 1)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.Output()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/teamcap_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"snapshot", "cmd", "untracked_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Snapshot, result.Command, result.UntrackedAvg, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, command := range slices.Sorted(maps.Keys(config.Commands)) {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-20s: Untracked: %s, Cold: %s, Warm: %s\n", result.Snapshot, result.UntrackedAvg, result.ColdTime, result.WarmTime)
			}
		}
	}

	fmt.Printf("Benchmark script completed successfully\n")
}

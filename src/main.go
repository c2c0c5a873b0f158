package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"multivator/src/config"
	"multivator/src/elev"
	"multivator/src/engine"
	"multivator/src/metrics"
	"multivator/src/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Dispatch failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := pflag.String("config", "", "Path to a YAML config file")
	buildingName := pflag.String("building", "Building 1", "Name of the building to create")
	elevators := pflag.Int("elevators", 2, "Number of elevators in the building")
	requests := pflag.IntSlice("requests", []int{}, "Requested floors, e.g. --requests 3,7")
	queues := pflag.StringArray("queue", nil, "Ride-along floors for one request, e.g. --queue 5,9; repeat for more queues")
	positions := pflag.IntSlice("positions", nil, "Current floor of every elevator, in creation order")
	policy := pflag.String("policy", config.DefaultPolicy, "Servicing policy: nearest or scan")
	parallel := pflag.Bool("parallel", false, "Simulate elevators concurrently")
	logLevel := pflag.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	logFile := pflag.String("log-file", "", "Also write logs to this file")
	output := pflag.StringP("output", "o", "yaml", "Output format: yaml or json")
	printMetrics := pflag.Bool("print-metrics", false, "Print metrics to stderr when done")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if pflag.CommandLine.Changed("policy") {
		cfg.Policy = *policy
	}
	if pflag.CommandLine.Changed("parallel") {
		cfg.Parallel = *parallel
	}
	if pflag.CommandLine.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if pflag.CommandLine.Changed("log-file") {
		cfg.LogFile = *logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	closeLog, err := elev.InitLogger(level, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	rideAlong, err := parseQueues(*queues)
	if err != nil {
		return err
	}

	s := store.Start()
	defer s.Close()
	en, err := engine.New(s, cfg)
	if err != nil {
		return err
	}
	building, err := en.CreateBuilding(*buildingName)
	if err != nil {
		return err
	}
	if _, err := en.InitializeFleet(building.ID, *elevators); err != nil {
		return err
	}

	result, err := en.RunDispatchCycle(building.ID, *requests, rideAlong, *positions)
	if err != nil {
		return err
	}
	if err := result.Err(); err != nil {
		slog.Warn("Some elevators did not finish their stops", "error", err)
	}

	var out []byte
	switch *output {
	case "json":
		out, err = json.MarshalIndent(result, "", "  ")
	case "yaml":
		out, err = yaml.Marshal(result)
	default:
		return fmt.Errorf("unknown output format %q", *output)
	}
	if err != nil {
		return fmt.Errorf("failed to encode result - %w", err)
	}
	fmt.Println(string(out))

	if *printMetrics {
		return metrics.WriteText(os.Stderr)
	}
	return nil
}

// parseQueues turns "5,9" style flags into ride-along queues. Without any
// flag every request gets an empty queue.
func parseQueues(raw []string) ([][]int, error) {
	if len(raw) == 0 {
		return [][]int{{}}, nil
	}
	queues := make([][]int, 0, len(raw))
	for _, r := range raw {
		queue := []int{}
		for _, field := range strings.Split(r, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			floor, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid floor %q in queue %q - %w", field, r, err)
			}
			queue = append(queue, floor)
		}
		queues = append(queues, queue)
	}
	return queues, nil
}

// Copyright 2025 The WordLex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the word lookup server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

WordLex provides fast word lookups over an in-memory rune trie: exact
membership checks, prefix walks, fixed-length wildcard patterns, bounded
edit-distance matching, and frequency-ranked prefix completion. It can
operate as a MessagePack IPC server for integration with text editors, or
as a CLI application for testing and debugging.

All query modes are accent and case insensitive: "fiance" finds "fiancé",
and results always carry the original spellings that were indexed. Words
are ranked by corpus frequency and filtered by configurable thresholds to
keep suggestions relevant.

# Usage

Start the server with default settings:

	wordlex

Use a custom dictionary directory and enable debug mode:

	wordlex -data /path/to/dicts -d

Run in CLI mode for interactive testing:

	wordlex -c -limit 10 -prmin 2

The data directory may contain plain word lists (.txt, one word per line,
ranked by position), counted lists (.csv, word and count per line), and
binary snapshots (.bin). Every recognizable file in the directory is
loaded and merged.

# Configuration

Runtime configuration is managed through a TOML file that supports server
parameters, dictionary settings, and CLI defaults:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[dict]
	max_words = 50000
	cache_size = 512
	min_frequency_threshold = 20
	min_frequency_short_prefix = 24
	default_fuzzy_distance = 1
	max_fuzzy_distance = 3

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests are
processed synchronously with microsecond timing information included in
responses. Every request names its operation:

	{"id": "req1", "op": "complete", "q": "hello", "l": 20}

Receive suggestions with frequency ranking:

	{"id": "req1", "s": [{"w": "hello", "r": 1}, {"w": "help", "r": 2}], "c": 2, "t": 145}

Fuzzy requests carry an edit distance budget:

	{"id": "fz1", "op": "fuzzy", "q": "fiance", "d": 1}

See the server package documentation for the full operation list.

# Server Mode

The default mode starts a MessagePack IPC server that processes requests
from stdin and writes responses to stdout. This design enables integration
with text editors and other applications through process communication.

	srv := server.NewServer(ix, completer, appConfig)
	err := srv.Start()

The server automatically handles request parsing, validation, and response
formatting, and caches fuzzy results for repeated queries.

# CLI Mode

CLI mode provides an interactive interface for testing and debugging the
query engines. It reads lines from stdin and maps each one onto a query
mode: a plain word asks for completions, '/w' walks a prefix, '~w [n]'
runs a fuzzy lookup, '=w' checks membership, and a '?' anywhere makes the
line a wildcard pattern.

	inputHandler := cli.NewInputHandler(completer, ix, minLen, maxLen, limit, dist, maxDist, noFilter)
	err := inputHandler.Start()

This mode is primarily intended for development and testing new features
before deploying to server mode. It supports the same filtering and
threshold logic as the server but with human-readable output.

# Query Engines

The core functionality is provided by the index and suggest packages. The
index stores original spellings under accent and case folded keys; the
completer layers frequency ranking and an LRU result cache on top.

	ix := builder.Seal()
	found := ix.Contains("fiancé")
	matches, err := ix.WordsWithinDistance("fiance", 1)
	suggestions := completer.Complete("prefix", 20)

# Command Line Flags

The following flags control application behavior:

	-data string
	    Directory containing dictionary files (default "data/")
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-config string
	    Path to config.toml (overrides the discovered location)
	-limit int
	    Number of suggestions to return (default from config)
	-prmin int
	    Minimum prefix length for suggestions
	-prmax int
	    Maximum prefix length for suggestions
	-dist int
	    Edit distance for CLI fuzzy queries (default from config)
	-no-filter
	    Disable input filtering for debugging
	-words int
	    Maximum words to keep after loading (0 for all)
	-build string
	    Convert a raw frequency list into a CSV dictionary and exit
	-out string
	    Output path for -build (defaults to the input with a .csv extension)

The application automatically resolves data and config paths relative to
the executable location, supporting both development and production
deployments.

Input filtering removes non-alphabetic prefixes by default to improve
suggestion relevance, though this can be disabled for debugging purposes.
Frequency thresholds are automatically adjusted based on prefix length to
balance result quality and quantity.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/wordlex/internal/cli"
	"github.com/bastiangx/wordlex/internal/logger"
	"github.com/bastiangx/wordlex/internal/utils"
	"github.com/bastiangx/wordlex/pkg/config"
	"github.com/bastiangx/wordlex/pkg/dictionary"
	"github.com/bastiangx/wordlex/pkg/index"
	"github.com/bastiangx/wordlex/pkg/server"
	"github.com/bastiangx/wordlex/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.9.0-beta"
	AppName = "wordlex"
	gh      = "https://github.com/bastiangx/wordlex"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "data/", "Directory containing dictionary files (.txt, .csv, .bin)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configFile := flag.String("config", "", "Path to config.toml (overrides the discovered location)")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum prefix length for suggestions (1 < n <= prmax)")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	distance := flag.Int("dist", defaultConfig.CLI.DefaultDistance, "Edit distance for CLI fuzzy queries")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (DBG only) - shows all raw dictionary entries (numbers, symbols, etc)")
	wordLimit := flag.Int("words", defaultConfig.Dict.MaxWords, "Maximum number of words to keep after loading (use 0 for all words)")
	buildIn := flag.String("build", "", "Convert a raw frequency list (TSV) into a CSV dictionary and exit")
	buildOut := flag.String("out", "", "Output path for -build (default: input path with .csv extension)")

	flag.Parse()

	if *showVersion {
		banner := logger.New("")

		styles := log.DefaultStyles()

		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

		banner.SetStyles(styles)

		banner.Print("")
		banner.Print("[ WordLex ] Fast accent-blind word lookups!")
		banner.Print("", "version", Version)
		banner.Print("")
		banner.Print("use -h or --help to see available options")
		banner.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *buildIn != "" {
		runBuild(*buildIn, *buildOut)
		return
	}

	// Initialize path resolver for robust path handling
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
		log.Print("Either env is not set or system is not supported")
		log.Print("Did you forget to run the build or install scripts?")
		os.Exit(1)
	}

	var appConfig *config.Config
	if *configFile != "" {
		loaded, activePath, err := config.LoadConfigWithPriority(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
			os.Exit(1)
		}
		appConfig = loaded
		log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))
	} else {
		configPath, err := pathResolver.GetConfigPath("config.toml")
		if err != nil {
			log.Fatalf("Failed to determine config path: (%v)", err)
			os.Exit(1)
		}
		log.Debugf("Using config file: (%s)", configPath)

		loaded, err := config.InitConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
			os.Exit(1)
		}
		appConfig = loaded
	}

	// Pathfinder for dictionary dir
	resolvedDataDir, err := pathResolver.GetDataDir(*dataDir)
	if err != nil {
		log.Fatalf("Failed to resolve data dir:(%v)", err)
		os.Exit(1)
	}
	log.Debugf("Using data dir at: %s", resolvedDataDir)

	loader := dictionary.NewLoader()
	if resolvedDataDir != "" {
		loaded, err := loader.LoadDirectory(resolvedDataDir)
		if err != nil {
			log.Fatalf("Failed to load dictionaries: %v", err)
			os.Exit(1)
		}
		if loaded == 0 {
			log.Warnf("No dictionary files found in %s, running with empty dict...", resolvedDataDir)
		}
	} else {
		log.Warn("No data dir specified, running with empty dict...")
	}
	loader.Truncate(*wordLimit)

	stats := loader.Stats()
	log.Debugf("Init engines: words=[%d], cacheSize=[%d]", stats.TotalWords, appConfig.Dict.CacheSize)

	builder := index.NewBuilder()
	completer := suggest.NewCompleterWithCache(appConfig.Dict.CacheSize)
	completer.SetFrequencyThresholds(appConfig.Dict.MinFreqThreshold, appConfig.Dict.MinFreqShortPrefix)
	loader.Populate(builder, completer)
	ix := builder.Seal()
	log.Debug("Engine init done")

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	// NOTE: Server interface has vastly different parameters compared to CLI and what it accepts.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"distance", *distance,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(completer, ix, *minPrefix, *maxPrefix, *limit, *distance, appConfig.Dict.MaxFuzzyDistance, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(ix, completer, appConfig)

	showStartupInfo(resolvedDataDir, stats.TotalWords)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// runBuild converts a raw frequency list into a loadable CSV dictionary.
func runBuild(inPath, outPath string) {
	if outPath == "" {
		ext := ".csv"
		if i := strings.LastIndexByte(inPath, '.'); i > 0 {
			outPath = inPath[:i] + ext
		} else {
			outPath = inPath + ext
		}
	}

	log.Printf("Building dictionary: %s -> %s", inPath, outPath)
	if err := dictionary.ConvertFrequencyList(inPath, outPath); err != nil {
		log.Fatalf("Failed to build dictionary: %v", err)
		os.Exit(1)
	}
	log.Printf("Dictionary written to %s", outPath)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir string, words int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("=========")
	println(" WordLex ")
	println("=========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("data dir: ( %s )", dataDir)
	log.Infof("indexed words: [ %d ]", words)
	log.Info("status: ready")
	println("=========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}

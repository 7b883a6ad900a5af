package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"trainsheet/pkg/config"
	"trainsheet/pkg/program"
	"trainsheet/pkg/sheets"
)

var errCancelled = errors.New("cancelled")

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	prog := flag.String("program", "", "Program to work on: walking or running (required)")
	initTable := flag.Bool("init", false, "Create the program table from scratch")
	addWeeks := flag.Bool("add", false, "Append weeks to an existing program table")
	weeks := flag.Int("weeks", 0, "Week count (prompted for when omitted)")
	configFile := flag.String("config", "trainsheet.toml", "Path to the config file")

	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	cfg, err := program.Lookup(*prog)
	if err != nil {
		log.Error("You must specify a program with -program walking|running")
		flag.Usage()
		os.Exit(1)
	}
	if *initTable == *addWeeks {
		log.Error("Specify exactly one of -init or -add")
		flag.Usage()
		os.Exit(1)
	}

	n := *weeks
	if n <= 0 {
		prompt := fmt.Sprintf("How many weeks should be added to the %s?", cfg.TableName)
		if *initTable {
			prompt = fmt.Sprintf("How many weeks should the %s start with?", cfg.TableName)
		}
		n, err = promptPositiveInteger(cfg.TableName, prompt)
		if errors.Is(err, errCancelled) {
			log.Info("Cancelled, nothing written")
			return
		}
		if err != nil {
			log.Fatalf("Invalid week count: %v", err)
		}
	}

	store, err := config.NewDatastore(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	table, err := sheets.NewSheetClient(
		store.Store.CredentialsFile,
		store.Store.SpreadsheetID,
		cfg.TableName,
	)
	if err != nil {
		log.Fatalf("Failed to connect to the spreadsheet: %v", err)
	}
	if err := table.Ensure(); err != nil {
		log.Fatalf("Failed to open %s: %v", cfg.TableName, err)
	}

	builder := program.NewBuilder(table)
	if *initTable {
		if err := builder.Initialize(n); err != nil {
			log.Fatalf("Failed to initialize %s: %v", cfg.TableName, err)
		}
		log.Infof("Created %s with %d weeks", cfg.TableName, n)
		return
	}

	existing, err := builder.CurrentWeeks()
	if err != nil {
		log.Fatalf("Failed to read %s: %v", cfg.TableName, err)
	}
	if err := builder.AddWeeks(existing, n); err != nil {
		log.Fatalf("Failed to extend %s: %v", cfg.TableName, err)
	}
	log.Infof("Extended %s to %d weeks", cfg.TableName, existing+n)
}

// promptPositiveInteger asks on stdin for a week count. An empty line or EOF
// counts as cancellation.
func promptPositiveInteger(title, message string) (int, error) {
	fmt.Printf("%s\n%s ", title, message)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return 0, errCancelled
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, errCancelled
	}
	n, err := strconv.Atoi(line)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("week count must be a positive integer, got %q", line)
	}
	return n, nil
}

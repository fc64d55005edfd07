package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/ledger-converter/internal/config"
	"github.com/dvloznov/ledger-converter/internal/export"
	"github.com/dvloznov/ledger-converter/internal/logger"
	"github.com/dvloznov/ledger-converter/internal/pipeline"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "convert":
		runConvert(log)
	case "banks":
		runBanks()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Ledger Converter CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  convert   Convert a bank statement into the ledger import CSV")
	fmt.Println("  banks     List the supported institutions")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func runConvert(log zerolog.Logger) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	file := fs.String("file", "", "Path to the statement file (.csv, .xls or .xlsx)")
	bank := fs.String("bank", "", "Institution key (see 'cli banks')")
	dateFormat := fs.String("date-format", "", "Date format hint overriding the institution default (e.g. DD/MM/YYYY)")
	startDate := fs.String("start-date", "", "Inclusive start date filter (YYYY-MM-DD)")
	outputDateFormat := fs.String("output-date-format", "", "Output date format: Day/Month/Year, Month/Day/Year or Year/Month/Day")
	importMemos := fs.Bool("import-memos", true, "Carry descriptions into the output")
	swap := fs.Bool("swap-payees-memos", false, "Write descriptions to the Payee column instead of Memo")
	out := fs.String("out", "", "Output path (defaults to <input>_ledger.csv)")
	fs.Parse(os.Args[2:])

	if *file == "" || *bank == "" {
		log.Fatal().Msg("Error: --file and --bank are required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read statement file")
	}

	ctx := logger.WithContext(context.Background(), log)
	converter := pipeline.New(config.DefaultRegistry(), log)

	csvText, count, err := converter.Convert(ctx, data, filepath.Base(*file), *bank, *dateFormat, *startDate, export.Options{
		ImportMemos:      *importMemos,
		SwapPayeesMemos:  *swap,
		OutputDateFormat: *outputDateFormat,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Conversion failed")
	}

	if count == 0 {
		fmt.Println("No transactions found. Check the selected bank, the date format and the start date filter.")
		return
	}

	target := *out
	if target == "" {
		target = strings.TrimSuffix(*file, filepath.Ext(*file)) + "_ledger.csv"
	}
	if err := os.WriteFile(target, []byte(csvText), 0o644); err != nil {
		log.Fatal().Err(err).Msg("Failed to write output file")
	}

	fmt.Printf("Wrote %d transactions to %s\n", count, target)
}

func runBanks() {
	registry := config.DefaultRegistry()
	fmt.Println("Supported institutions:")
	for _, key := range registry.Keys() {
		fmt.Printf("  %-10s %s\n", key, registry[key].Label)
	}
}

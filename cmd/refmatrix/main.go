// Command refmatrix runs the document cross-reference pipeline: extract
// references from spreadsheet specifications, build the reference graph,
// score document relevance, generate retrieval ground truth, and reorder
// the resulting matrices for inspection.
//
// Subcommands:
//
//	extract    scan a directory of spreadsheets and write the
//	           extraction-result JSON
//	rebuild    re-run graph building over a hand-edited extraction result
//	relevance  compute relevance matrices, ground truth, and the run summary
//	cooccur    compute the reference co-occurrence matrix
//	reorder    cluster and reorder a saved matrix CSV
//
// Configuration comes from flags, with environment defaults (optionally via
// a .env file): REFMATRIX_OUTPUT_DIR, REFMATRIX_POLICY, REFMATRIX_THRESHOLD,
// REFMATRIX_TOP_K, DEBUG.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})
	loadEnv(logger)
	if getEnvBool("DEBUG", false) {
		logger.SetLevel(log.DebugLevel)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "extract":
		err = runExtract(ctx, os.Args[2:], logger)
	case "rebuild":
		err = runRebuild(os.Args[2:], logger)
	case "relevance":
		err = runRelevance(os.Args[2:], logger)
	case "cooccur":
		err = runCooccur(os.Args[2:], logger)
	case "reorder":
		err = runReorder(os.Args[2:], logger)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: refmatrix <subcommand> [flags]

subcommands:
  extract    scan spreadsheets and write the extraction-result JSON
  rebuild    re-run graph building over an edited extraction result
  relevance  compute relevance matrices, ground truth, and the summary
  cooccur    compute the reference co-occurrence matrix
  reorder    cluster and reorder a saved matrix CSV

run "refmatrix <subcommand> -h" for the subcommand's flags.
`)
}

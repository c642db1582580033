package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/idr/idroi/api/config"
	"github.com/idr/idroi/api/roiimport"
	"github.com/idr/idroi/api/services"
	"github.com/pkg/errors"
)

func main() {
	cfg, positionals, err := config.Init(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("Failed to read configuration: %v", err)
	}

	args, err := parseCommand(positionals)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}

	fmt.Println("==============================")
	fmt.Println("=    IDR ROI importer        =")
	fmt.Println("==============================")
	fmt.Printf("Version: %v (%v)\n", services.ApiVersion, services.GitHash)

	svcs, err := services.InitImporterServices(cfg)
	if err != nil {
		log.Fatalf("Failed to initialise: %v", err)
	}

	err = runCommand(context.Background(), svcs, args)

	// log.Fatalf skips defers, so clean up first
	svcs.Finish(services.Grouping(args.command, args.screenID))

	if err != nil {
		log.Fatalf("%v failed: %v", args.command, err)
	}
}

func runCommand(ctx context.Context, svcs *services.ImporterServices, args commandArgs) error {
	if svcs.Config.DryRun {
		svcs.Log.Infof("Dry run, nothing will be saved or deleted")
	}

	switch args.command {
	case cmdImport:
		imp, err := svcs.MakeImporter(ctx)
		if err != nil {
			return err
		}

		src, err := svcs.OpenSource(args.file)
		if err != nil {
			return err
		}
		defer src.Close()

		summary, err := imp.Import(ctx, src, args.file, args.screenID)
		logSummary(svcs, summary)
		return err

	case cmdRemove:
		imp, err := svcs.MakeImporter(ctx)
		if err != nil {
			return err
		}

		summary, err := imp.Remove(ctx, args.screenID, args.file)
		logSummary(svcs, summary)
		return err

	case cmdParse:
		src, err := svcs.OpenSource(args.file)
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = svcs.MakeParser().Parse(src)
		return err
	}

	return badCommandError{command: args.command}
}

func logSummary(svcs *services.ImporterServices, summary roiimport.Summary) {
	svcs.Log.Infof("Summary: %+v", summary)
	if summary.BatchesFailed > 0 {
		svcs.Log.Errorf("%d images failed, see errors above", summary.BatchesFailed)
	}
}

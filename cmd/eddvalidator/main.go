// Command eddvalidator validates a laboratory EDD workbook against the
// site's De-Para mappings and the reference database, and writes an
// annotated, timestamped copy with valid and errored rows on separate
// sheets.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"eddcli/internal/config"
	"eddcli/internal/infrastructure"
	"eddcli/internal/pipeline"
	"eddcli/internal/refdb"
)

func main() {
	eddPath := flag.String("edd", "", "path to the EDD workbook (.xlsx)")
	deParaPath := flag.String("depara", "", "path to the De-Para mapping workbook (.xlsx)")
	server := flag.String("server", "", "reference database server (overrides EDD_DATABASE_SERVER)")
	database := flag.String("database", "", "reference database name (overrides EDD_DATABASE_NAME)")
	dataType := flag.String("type", "", "data type being validated: agua or solo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.Database.Server = *server
	}
	if *database != "" {
		cfg.Database.Name = *database
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	// The data type gates everything else; an unknown value fails before
	// any file or database I/O.
	dt, err := config.ResolveDataType(*dataType)
	if err != nil {
		fail(logger, err)
	}

	ctx := context.Background()

	store, err := refdb.New(ctx, cfg.Database, dt)
	if err != nil {
		fail(logger, err)
	}
	defer store.Close()

	outputPath, err := pipeline.Run(ctx, pipeline.Request{
		EDDPath:    *eddPath,
		DeParaPath: *deParaPath,
		DataType:   *dataType,
	}, dt, store, logger)
	if err != nil {
		fail(logger, err)
	}

	fmt.Printf("Validação concluída e salva em: '%s'\n", outputPath)
}

// fail reports a fatal error to the operator and exits. No output workbook
// exists at this point.
func fail(logger *slog.Logger, err error) {
	logger.Error("validation aborted", slog.String("error", err.Error()))
	fmt.Printf("Erro: %s\n", err)
	os.Exit(1)
}

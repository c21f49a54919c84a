// catalogctl обслуживает базу прайса без HTTP: загрузка файла, очистка,
// администраторы, просмотр групп.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"basket-service/internal/basket/service"
	"basket-service/internal/config"
	"basket-service/internal/fileio"
	"basket-service/internal/storage/sqlite"
)

const usage = `Usage: catalogctl [-db path] [-v] <command> [args]

Commands:
  import <file>      load a headerless price list (.xlsx, .xls, .csv): name, store, price
  clear              remove every product
  add-admin <id>     allow a user to upload and clear the catalog
  admins             list administrators
  groups [limit]     list product groups (0 = all)
`

func main() {
	cfg := config.Load()
	var (
		dbPath  = flag.String("db", cfg.DBPath, "path to the catalog database")
		verbose = flag.Bool("v", false, "verbose output")
	)
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	store, err := sqlite.Open(*dbPath)
	if err != nil {
		logger.Fatal().Err(err).Str("db", *dbPath).Msg("open storage")
	}
	defer store.Close()

	if err := run(context.Background(), store, logger, os.Stdout, flag.Args()); err != nil {
		logger.Error().Err(err).Msg(flag.Arg(0))
		store.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, store *sqlite.Store, logger zerolog.Logger, out io.Writer, args []string) error {
	catalog := service.NewCatalog(store, logger)

	switch cmd, rest := args[0], args[1:]; cmd {
	case "import":
		if len(rest) != 1 {
			return fmt.Errorf("import: expected one file")
		}
		return importFile(ctx, catalog, out, rest[0])

	case "clear":
		n, err := catalog.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "removed %d products\n", n)
		return nil

	case "add-admin":
		if len(rest) != 1 || strings.TrimSpace(rest[0]) == "" {
			return fmt.Errorf("add-admin: expected one user id")
		}
		if err := store.AddAdmin(ctx, strings.TrimSpace(rest[0])); err != nil {
			return err
		}
		fmt.Fprintf(out, "admin %s added\n", strings.TrimSpace(rest[0]))
		return nil

	case "admins":
		ids, err := store.Admins(ctx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(out, id)
		}
		return nil

	case "groups":
		limit := 0
		if len(rest) > 0 {
			if _, err := fmt.Sscan(rest[0], &limit); err != nil || limit < 0 {
				return fmt.Errorf("groups: bad limit %q", rest[0])
			}
		}
		if err := catalog.Load(ctx); err != nil {
			return err
		}
		for _, s := range catalog.Snapshot().Suggestions(limit) {
			g, _ := catalog.Snapshot().Group(s.Key)
			fmt.Fprintf(out, "%s\t%d\t%s\n", s.Key, len(g.Variants), strings.Join(s.Examples, " | "))
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func importFile(ctx context.Context, catalog *service.Catalog, out io.Writer, path string) error {
	if !fileio.Supported(path) {
		return fmt.Errorf("%w: %s", fileio.ErrUnsupported, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := fileio.ReadAnyRows(f, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	rep, err := catalog.Ingest(ctx, rows)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n=== Import Results ===\n")
	fmt.Fprintf(out, "Rows: %d\n", rep.Rows)
	fmt.Fprintf(out, "Added: %d\n", rep.Added)
	fmt.Fprintf(out, "Duplicates: %d\n", rep.Duplicates)
	fmt.Fprintf(out, "Errors: %d\n", rep.Errors)
	for _, e := range rep.RowErrors {
		fmt.Fprintf(out, "  %s\n", e.Error())
	}
	return nil
}

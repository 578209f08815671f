package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/fastprodman/PaymentsHW/internal/csvio"
	"github.com/fastprodman/PaymentsHW/internal/infra/logging"
	"github.com/fastprodman/PaymentsHW/internal/services/ledger"
	"github.com/fastprodman/PaymentsHW/pkg/envconf"
	"github.com/fastprodman/PaymentsHW/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running engine: %v\n", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) (retErr error) {
	cfg := new(engineConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	if len(args) != 1 {
		return errors.New("usage: engine <transactions.csv>")
	}

	inputPath := args[0]
	runID := uuid.NewString()

	slog.Info("engine run started", "run_id", runID, "input", inputPath)

	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}

	shutdownqueue.Add(func(context.Context) error {
		cerr := input.Close()
		if cerr != nil {
			return fmt.Errorf("close input: %w", cerr)
		}

		return nil
	})

	eng := ledger.New()
	reader := csvio.NewReader(input)

	var rows int

	for {
		// A canceled ctx (Ctrl-C) aborts the run; no snapshots are emitted
		// for a partial read.
		err = ctx.Err()
		if err != nil {
			return fmt.Errorf("run interrupted after %d rows: %w", rows, err)
		}

		tx, rerr := reader.Read()
		if errors.Is(rerr, io.EOF) {
			break
		}

		if rerr != nil {
			return fmt.Errorf("read transactions: %w", rerr)
		}

		eng.Process(tx)
		rows++
	}

	snapshots := eng.Snapshot()

	err = csvio.NewWriter(out).WriteAccounts(snapshots)
	if err != nil {
		return fmt.Errorf("write accounts: %w", err)
	}

	slog.Info("engine run finished", "run_id", runID, "rows", rows, "accounts", len(snapshots))

	return nil
}

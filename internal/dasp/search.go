package dasp

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/RBVI/dasp3/config"
	"github.com/RBVI/dasp3/internal/pssm"
	"github.com/RBVI/dasp3/internal/scan"
	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// SearchCmd builds a matrix from each motif fragment and searches the
// database for sequences that match all of them.
func SearchCmd(cmd *cobra.Command, args []string) {
	start := time.Now()
	flags, conf := parseCmdFlags(cmd, args, true)

	if conf.Verbose {
		if info, err := os.Stat(flags.db); err == nil {
			stderr.Printf("searching %s (%s) with %d motif fragments", flags.db, humanize.Bytes(uint64(info.Size())), len(flags.motifs))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	prog := newProgress(os.Stderr, conf.Verbose)
	out, err := Search(ctx, flags.db, flags.motifs, conf, prog.scanned)
	prog.done()
	if err != nil {
		stderr.Fatal(err)
	}
	out.Execution = time.Since(start).Seconds()

	if conf.Verbose {
		stderr.Printf(
			"read %s records: %s skipped, %s scored, %s below %g",
			humanize.Comma(out.Stats.Read),
			humanize.Comma(out.Stats.Skipped),
			humanize.Comma(out.Stats.Scored),
			humanize.Comma(out.Stats.Accepted),
			conf.Threshold,
		)
	}

	if err := write(flags, out); err != nil {
		stderr.Fatal(err)
	}
}

// Search reads the motif fragments and scans the database at db with their
// matrices. Matrices are searched widest first and results are ranked.
func Search(ctx context.Context, db string, motifs []string, conf *config.Config, onScanned func(bool)) (Output, error) {
	start := time.Now()

	bg, err := conf.BackgroundTable()
	if err != nil {
		return Output{}, err
	}

	matrices, err := ReadMotifs(motifs, bg, conf.IncludeX)
	if err != nil {
		return Output{}, err
	}
	pssm.SortByWidth(matrices)

	scanner, err := scan.New(matrices, scan.Options{
		Workers:   conf.Workers,
		QueueSize: conf.QueueSize,
		Threshold: conf.Threshold,
		IncludeX:  conf.IncludeX,
		Timeout:   conf.Timeout,
		OnScanned: onScanned,
	})
	if err != nil {
		return Output{}, err
	}

	res, err := scanner.ScanFile(ctx, db)
	if err != nil {
		return Output{}, fmt.Errorf("failed to search %s: %w", db, err)
	}

	return NewOutput(db, scanner.Matrices(), res, conf.Threshold, time.Since(start).Seconds()), nil
}

// write sends the output to the file in flags, or stdout.
func write(flags *Flags, out Output) error {
	var w io.Writer = os.Stdout
	if flags.out != "" {
		f, err := os.Create(flags.out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %v", flags.out, err)
		}
		defer f.Close()
		w = f
	}

	if flags.json {
		return WriteJSON(w, out)
	}
	return WriteTSV(w, out)
}

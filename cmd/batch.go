package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/njchilds90/symcanon"
)

type batchJob struct {
	Line int    `json:"line"`
	Expr string `json:"expr"`
}

type batchResult struct {
	batchJob
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`

	err error
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		vars     []string
		workers  int
		jsonOut  bool
		progress bool
	)
	c := &cobra.Command{
		Use:   "batch FILE",
		Short: "Canonicalize one expression per line of FILE (- for stdin)",
		Long: "Canonicalize one expression per line of FILE. Blank lines and lines " +
			"starting with # are skipped. Results are printed in input order.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			jobs, err := readJobs(in)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			var bar *progressbar.ProgressBar
			if progress {
				bar = progressbar.NewOptions(len(jobs),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription(args[0]),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWidth(40))
			}

			results, err := runBatch(cmd, a.canon, a.logger, jobs, a.variables(vars), workers, bar)
			if err != nil {
				return err
			}
			if bar != nil {
				_ = bar.Finish()
				fmt.Fprintln(cmd.ErrOrStderr())
			}

			failed := 0
			for _, r := range results {
				if r.err != nil {
					failed++
				}
			}
			if err := writeBatch(cmd.OutOrStdout(), results, jsonOut); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d expressions failed", failed, len(results))
			}
			return nil
		},
	}
	c.Flags().StringSliceVar(&vars, "vars", nil, "comma-separated variable names (default: configured variables)")
	c.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "number of concurrent workers")
	c.Flags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	c.Flags().BoolVar(&progress, "progress", false, "show a progress bar on stderr")
	return c
}

func readJobs(r io.Reader) ([]batchJob, error) {
	var jobs []batchJob
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		jobs = append(jobs, batchJob{Line: line, Expr: text})
	}
	return jobs, sc.Err()
}

// runBatch canonicalizes jobs on a bounded pool of workers. Per-expression
// failures are recorded in the results; only cancellation aborts the run.
func runBatch(
	cmd *cobra.Command,
	canon *symcanon.Canonicalizer,
	logger *zap.Logger,
	jobs []batchJob,
	vars []string,
	workers int,
	bar *progressbar.ProgressBar,
) ([]batchResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]batchResult, len(jobs))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := batchResult{batchJob: job}
			out, err := canon.Canonicalize(job.Expr, vars)
			if err != nil {
				logger.Debug("expression failed", zap.Int("line", job.Line), zap.Error(err))
				res.err = err
				res.Error = err.Error()
			} else {
				res.Result = out
			}
			results[i] = res
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeBatch(w io.Writer, results []batchResult, jsonOut bool) error {
	if jsonOut {
		if results == nil {
			results = []batchResult{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		if r.err != nil {
			errorStyle.Fprintf(w, "line %d: ", r.Line)
			fmt.Fprintln(w, r.Error)
			continue
		}
		resultStyle.Fprintln(w, r.Result)
	}
	return nil
}

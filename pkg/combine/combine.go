// Package combine runs the full pipeline: resolve the input, filter every
// discovered file through the inclusion policy, and write the accepted files
// to a single output file.
package combine

import (
	"context"
	"fmt"
	"time"

	"repo2file/pkg/apperror"
	"repo2file/pkg/emit"
	"repo2file/pkg/policy"
	"repo2file/pkg/source"
	"repo2file/pkg/walker"

	"go.uber.org/zap"
)

// Combiner runs combine passes.
type Combiner struct {
	Acquirer *source.Acquirer
	logger   *zap.Logger
}

// New returns a Combiner that clones remote inputs with go-git.
func New(logger *zap.Logger) *Combiner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Combiner{Acquirer: source.New(logger), logger: logger}
}

// Run is the entry point for callers that do not need a custom Combiner.
func Run(ctx context.Context, args *Arguments, logger *zap.Logger) (*Summary, error) {
	return New(logger).Run(ctx, args)
}

// Run executes one pass. Configuration is validated before the input is
// acquired, and the input is fully acquired before the output is created and
// traversal starts. Any read failure aborts the run and leaves the output as
// far as it was written.
func (c *Combiner) Run(ctx context.Context, args *Arguments) (*Summary, error) {
	startTime := time.Now()
	logger := c.logger
	logger.Info("Starting combination process", zap.String("input", args.Input))

	pol, err := compilePolicy(args)
	if err != nil {
		logger.Error("Invalid filter configuration", zap.Error(err))
		return nil, fmt.Errorf("failed to compile inclusion policy: %w", err)
	}

	checkout, err := c.Acquirer.Acquire(ctx, args.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire input: %w", err)
	}
	defer func() {
		_ = checkout.Close()
	}()

	writer, err := emit.Create(args.Output, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open output: %w", err)
	}
	defer func() {
		_ = writer.Close()
	}()

	if logPath := errorLogPath(args); logPath != "" {
		if err := writeToFile(logPath, nil, 0o644, logger); err != nil {
			return nil, fmt.Errorf("failed to create error log: %w",
				apperror.Wrap(err, apperror.CreateOutputFailed, "failed to create error log").WithPath(logPath))
		}
	}

	opts := args.Walk
	opts.Relative = checkout.Remote
	w := walker.New(checkout.Dir, opts, logger)

	files := CollectFiles(w, pol, outputPaths(args), logger)

	if err := emitFiles(writer, w, files, errorLogPath(args), logger); err != nil {
		return nil, fmt.Errorf("failed to write combined output: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish combined output: %w", err)
	}

	if args.Tree != "" {
		tree := GenerateTree(args.Input, relativeTo(w, files))
		if err := writeToFile(args.Tree, []byte(tree), 0o644, logger); err != nil {
			return nil, fmt.Errorf("failed to write tree structure: %w", err)
		}
	}

	logger.Info("Combination process completed",
		zap.String("outputFile", args.Output),
		zap.Int("totalFiles", len(files)),
		zap.Int("records", writer.Records()),
		zap.Duration("elapsed", time.Since(startTime)))

	return &Summary{Root: checkout.Dir, Output: args.Output, Files: files}, nil
}

func compilePolicy(args *Arguments) (*policy.Policy, error) {
	defaults := policy.Defaults()
	if args.DefaultsFile != "" {
		loaded, err := policy.LoadDefaults(args.DefaultsFile)
		if err != nil {
			return nil, err
		}
		defaults = loaded
	}
	return policy.Compile(defaults, args.Request)
}

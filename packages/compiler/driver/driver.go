package driver

import (
	"context"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"soyc-go/packages/compiler/passes"
	"soyc-go/packages/compiler/soyparse"
	"soyc-go/packages/compiler/soytree"
	"soyc-go/packages/compiler/util"
)

// Structure parses the file and makes the html structure latent in its
// raw text explicit.
func Structure(file *util.ParseSourceFile, reporter *util.ErrorReporter) []soytree.StandaloneNode {
	nodes := soyparse.ParseTemplate(file, reporter)
	return soyparse.Rewrite(nodes, reporter)
}

// Flatten structures the file and renders the html back into coalesced
// raw text.
func Flatten(file *util.ParseSourceFile, reporter *util.ErrorReporter) []soytree.StandaloneNode {
	return passes.Desugar(Structure(file, reporter))
}

// Options controls how a set of files is processed.
type Options struct {
	// Flatten renders each structured tree back into raw text.
	Flatten bool
	// FailFast stops scheduling new files after the first file with
	// errors.
	FailFast bool
	// Parallelism caps the worker count; zero means one worker per cpu.
	Parallelism int
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	File   *util.ParseSourceFile
	Nodes  []soytree.StandaloneNode
	Errors []*util.ParseError
}

// ReadSourceFile loads one template file from disk.
func ReadSourceFile(path string) (*util.ParseSourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading template %s", path)
	}
	return util.NewParseSourceFile(string(content), path), nil
}

// ProcessFiles structures every file, fanning the work out across
// workers. Results keep the order of the input; entries for files left
// unprocessed after a fail fast stop are nil.
func ProcessFiles(ctx context.Context, files []*util.ParseSourceFile, opts Options) ([]*FileResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)
	results := make([]*FileResult, len(files))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reporter := util.NewErrorReporter()
			nodes := Structure(file, reporter)
			if opts.Flatten && !reporter.HasErrors() {
				nodes = passes.Desugar(nodes)
			}
			results[i] = &FileResult{File: file, Nodes: nodes, Errors: reporter.Errors()}
			logrus.Debugf("processed %s: %d top level nodes, %d errors", file.URL, len(nodes), len(reporter.Errors()))
			if opts.FailFast && reporter.HasErrors() {
				return errors.Errorf("%s: %d parse errors", file.URL, len(reporter.Errors()))
			}
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

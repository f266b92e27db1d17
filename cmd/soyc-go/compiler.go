package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"soyc-go/packages/compiler/driver"
	"soyc-go/packages/compiler/soytree"
	"soyc-go/packages/compiler/util"
)

func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "manifest",
			Aliases: []string{"m"},
			Usage:   "yaml manifest listing template files",
		},
		&cli.BoolFlag{
			Name:  "fail-fast",
			Usage: "stop after the first template with errors",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "number of templates to process in parallel (default: number of cpus)",
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "write output to this file instead of stdout",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "emit results as json",
		},
	}
}

func structureCommand() *cli.Command {
	return &cli.Command{
		Name:      "structure",
		Usage:     "parse templates and print the structured html tree",
		ArgsUsage: "[templates...]",
		Flags:     append(inputFlags(), outputFlags()...),
		Action: func(c *cli.Context) error {
			results, err := process(c, driver.Options{
				FailFast:    c.Bool("fail-fast"),
				Parallelism: c.Int("jobs"),
			})
			if err != nil {
				return err
			}
			return emit(c, results, func(res *driver.FileResult) string {
				return soytree.TreeString(res.Nodes)
			})
		},
	}
}

func flattenCommand() *cli.Command {
	return &cli.Command{
		Name:      "flatten",
		Usage:     "structure templates, then render the html back into normalized raw text",
		ArgsUsage: "[templates...]",
		Flags:     append(inputFlags(), outputFlags()...),
		Action: func(c *cli.Context) error {
			results, err := process(c, driver.Options{
				Flatten:     true,
				FailFast:    c.Bool("fail-fast"),
				Parallelism: c.Int("jobs"),
			})
			if err != nil {
				return err
			}
			return emit(c, results, func(res *driver.FileResult) string {
				return soytree.SourceString(res.Nodes)
			})
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "parse templates and report diagnostics without printing trees",
		ArgsUsage: "[templates...]",
		Flags:     inputFlags(),
		Action: func(c *cli.Context) error {
			results, err := process(c, driver.Options{
				FailFast:    c.Bool("fail-fast"),
				Parallelism: c.Int("jobs"),
			})
			if err != nil {
				return err
			}
			errorCount := printDiagnostics(results)
			checked := 0
			for _, res := range results {
				if res != nil {
					checked++
				}
			}
			logrus.Infof("checked %d templates, %d errors", checked, errorCount)
			if errorCount > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func process(c *cli.Context, opts driver.Options) ([]*driver.FileResult, error) {
	paths := c.Args().Slice()
	if manifest := c.String("manifest"); manifest != "" {
		fromManifest, err := driver.LoadManifest(manifest)
		if err != nil {
			return nil, err
		}
		paths = append(paths, fromManifest...)
	}
	if len(paths) == 0 {
		return nil, errors.New("no input templates; pass paths or --manifest")
	}
	files := make([]*util.ParseSourceFile, len(paths))
	for i, path := range paths {
		file, err := driver.ReadSourceFile(path)
		if err != nil {
			return nil, err
		}
		files[i] = file
	}
	results, err := driver.ProcessFiles(c.Context, files, opts)
	if err != nil {
		if !opts.FailFast {
			return nil, err
		}
		logrus.Debugf("stopped early: %v", err)
	}
	return results, nil
}

type renderFunc func(*driver.FileResult) string

func emit(c *cli.Context, results []*driver.FileResult, render renderFunc) error {
	var out io.Writer = os.Stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "creating %s", path)
		}
		defer f.Close()
		out = f
	}
	errorCount := printDiagnostics(results)
	if c.Bool("json") {
		if err := emitJSON(out, results, render); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			if res == nil || len(res.Errors) > 0 {
				continue
			}
			if len(results) > 1 {
				fmt.Fprintf(out, "// %s\n", res.File.URL)
			}
			fmt.Fprintln(out, render(res))
		}
	}
	if errorCount > 0 {
		return cli.Exit(fmt.Sprintf("%d errors", errorCount), 1)
	}
	return nil
}

type fileReport struct {
	File   string   `json:"file"`
	Output string   `json:"output,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func emitJSON(out io.Writer, results []*driver.FileResult, render renderFunc) error {
	reports := make([]fileReport, 0, len(results))
	for _, res := range results {
		if res == nil {
			continue
		}
		report := fileReport{File: res.File.URL}
		if len(res.Errors) == 0 {
			report.Output = render(res)
		}
		for _, perr := range res.Errors {
			report.Errors = append(report.Errors, perr.Error())
		}
		reports = append(reports, report)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(reports), "encoding json output")
}

func printDiagnostics(results []*driver.FileResult) int {
	count := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		for _, perr := range res.Errors {
			fmt.Fprintln(os.Stderr, perr.ContextualMessage())
			count++
		}
	}
	return count
}

// msgcat concatenates and normalizes message catalogs in their text form:
// input files are parsed into the catalog model and written back out as
// one canonically escaped catalog.
package main

import (
	"os"
	"sort"

	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/go-l10n/msgcat/catalog"
)

type options struct {
	Output string `short:"o" long:"output" value-name:"FILE" description:"write output to FILE instead of stdout"`

	SortOutput bool `short:"s" long:"sort-output" description:"sort entries by key"`

	UseFirst bool `long:"use-first" description:"on duplicate keys, keep the first entry seen instead of failing"`

	Verbose bool `short:"v" long:"verbose" description:"enable debug logging"`
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] FILE..."
	files, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := newLogger(opts.Verbose)
	if len(files) == 0 {
		logger.Fatal().Msg("no input files")
	}

	merged := catalog.New()
	for _, filename := range files {
		f, err := os.Open(filename)
		if err != nil {
			logger.Fatal().Err(err).Str("file", filename).Msg("cannot open catalog")
		}
		parsed, err := catalog.Parse(f)
		f.Close()
		if err != nil {
			logger.Fatal().Err(err).Str("file", filename).Msg("cannot parse catalog")
		}
		logger.Debug().Str("file", filename).Int("entries", parsed.Len()).Msg("parsed catalog")

		if merged.Header() == "" {
			merged.SetHeader(parsed.Header())
		}
		for _, e := range parsed.Entries() {
			if err := mergeEntry(merged, e, opts.UseFirst); err != nil {
				logger.Fatal().Err(err).Str("file", filename).Msg("cannot merge catalog")
			}
		}
	}

	if opts.SortOutput {
		merged = sortedByKey(merged)
	}

	out := os.Stdout
	if opts.Output != "" {
		out, err = os.Create(opts.Output)
		if err != nil {
			logger.Fatal().Err(err).Str("file", opts.Output).Msg("cannot create output")
		}
		defer out.Close()
	}
	if _, err := merged.WriteTo(out); err != nil {
		logger.Fatal().Err(err).Msg("cannot write catalog")
	}
}

func mergeEntry(dst *catalog.Catalog, e *catalog.Entry, useFirst bool) error {
	key, err := e.Key()
	if err != nil {
		return err
	}
	if dst.Lookup(key) != nil && useFirst {
		return nil
	}
	return dst.Add(e.Clone())
}

// sortedByKey rebuilds a catalog with its entries ordered by key.
func sortedByKey(c *catalog.Catalog) *catalog.Catalog {
	entries := c.Entries()
	sort.Slice(entries, func(i, j int) bool {
		ki, _ := entries[i].Key()
		kj, _ := entries[j].Key()
		return ki < kj
	})
	out := catalog.New()
	out.SetHeader(c.Header())
	out.SetPluralForms(c.PluralForms())
	for _, e := range entries {
		// keys were unique in c, so Add cannot fail
		out.Add(e.Clone()) //nolint:errcheck
	}
	return out
}

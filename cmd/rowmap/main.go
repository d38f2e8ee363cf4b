package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"rowmapper/internal/config"
	"rowmapper/internal/export"
	"rowmapper/internal/iox"
	"rowmapper/internal/mapping"
	"rowmapper/internal/rowmap"
	"rowmapper/internal/sink"
)

var version = "v1.0"

type options struct {
	in          string
	out         string
	mappingPath string
	sep         string
	encoding    string
	outEncoding string
	format      string
	table       string
	dryRun      bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config load error: %v", err)
	}

	var opt options
	flag.StringVar(&opt.in, "in", "", "Input .csv or .txt file")
	flag.StringVar(&opt.out, "out", "", "Output file (default: stdout)")
	flag.StringVar(&opt.mappingPath, "mapping", cfg.MappingPath, "Mapping file (.yaml, .yml or .json)")
	flag.StringVar(&opt.sep, "sep", "", "Column separator (default: mapping file, then ROWMAP_SEPARATOR)")
	flag.StringVar(&opt.encoding, "encoding", "", "Input encoding (default: mapping file, then ROWMAP_ENCODING)")
	flag.StringVar(&opt.outEncoding, "out-encoding", "UTF-8", "Output encoding for csv/jsonl")
	flag.StringVar(&opt.format, "format", "jsonl", "Output format: jsonl | csv | mysql")
	flag.StringVar(&opt.table, "table", "", "Target table for -format mysql")
	flag.BoolVar(&opt.dryRun, "dry-run", false, "Read and map the input, but write nothing")
	showPlan := flag.Bool("plan", false, "Show plan and exit")
	flag.Parse()

	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}
	logrus.SetOutput(os.Stderr)

	if opt.in == "" || opt.mappingPath == "" {
		logrus.Fatal("-in and -mapping are required")
	}

	mf, err := mapping.LoadFile(opt.mappingPath)
	if err != nil {
		logrus.Fatalf("mapping: %v", err)
	}
	opt.sep = firstNonEmpty(opt.sep, mf.Separator, cfg.Separator)
	opt.encoding = firstNonEmpty(opt.encoding, mf.Encoding, cfg.Encoding)

	if *showPlan {
		fmt.Printf("==== rowmap %s Execution Plan ====\n", version)
		fmt.Printf("Input              : %s\n", opt.in)
		fmt.Printf("Mapping            : %s\n", opt.mappingPath)
		fmt.Printf("Columns            : %v\n", mf.Fields())
		fmt.Printf("Separator          : %q\n", opt.sep)
		fmt.Printf("Encoding           : %s\n", opt.encoding)
		fmt.Printf("Format             : %s\n", opt.format)
		fmt.Printf("Output             : %s\n", firstNonEmpty(opt.out, opt.table, "stdout"))
		return
	}

	start := time.Now()
	defer func() {
		logrus.Infof("completed in %v", time.Since(start))
	}()

	if err := run(context.Background(), cfg, mf, opt); err != nil {
		var uce *rowmap.UnmappedColumnError
		if errors.As(err, &uce) {
			logrus.WithField("column", uce.Column).Error("header column has no mapping entry")
		}
		logrus.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, mf *mapping.File, opt options) error {
	schema, err := mapping.DocumentSchema(mf)
	if err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	docs, err := rowmap.ReadFile(opt.in, opt.encoding, opt.sep, schema)
	if err != nil {
		return fmt.Errorf("read %s: %w", opt.in, err)
	}
	logrus.WithFields(logrus.Fields{"file": opt.in, "records": len(docs)}).Info("input mapped")

	if opt.dryRun {
		logrus.Info("dry-run: nothing written")
		return nil
	}

	switch strings.ToLower(opt.format) {
	case "jsonl":
		return writeOut(opt, func(w io.Writer) error {
			jw := export.NewJSONL(w)
			for _, d := range docs {
				if err := jw.WriteDocument(d); err != nil {
					return err
				}
			}
			return jw.Flush()
		})
	case "csv":
		return writeOut(opt, func(w io.Writer) error {
			dw, err := export.NewDelimited(w, opt.sep)
			if err != nil {
				return err
			}
			// Header keeps the input column names so the output reads back with the same mapping.
			if err := dw.WriteHeader(mf.Names()); err != nil {
				return err
			}
			for _, d := range docs {
				if err := dw.WriteRow(d.Values); err != nil {
					return err
				}
			}
			return dw.Flush()
		})
	case "mysql":
		return load(ctx, cfg, mf, opt, docs)
	default:
		return fmt.Errorf("unknown format: %s", opt.format)
	}
}

func writeOut(opt options, write func(io.Writer) error) error {
	enc, err := iox.LookupEncoding(opt.outEncoding)
	if err != nil {
		return err
	}

	var out io.WriteCloser
	if opt.out == "" {
		out = iox.Encode(nopCloser{os.Stdout}, enc)
	} else {
		out, err = iox.Create(opt.out, enc)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
	}

	if err := write(out); err != nil {
		_ = out.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return out.Close()
}

func load(ctx context.Context, cfg *config.Config, mf *mapping.File, opt options, docs []export.Document) error {
	if opt.table == "" {
		return errors.New("-table is required for -format mysql")
	}
	db, err := sink.Open(cfg)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logrus.Warnf("db close failed: %v", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	l := &sink.Loader{
		DB:      db,
		Table:   opt.table,
		Columns: mf.Fields(),
		Chunk:   cfg.SinkChunk,
		Log:     logrus.WithField("component", "sink"),
	}
	_, err = l.Load(ctx, sink.DocumentRows(docs))
	return err
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

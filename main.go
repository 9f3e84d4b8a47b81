package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go_qoidecode/internal/batch"
	"go_qoidecode/internal/export"
	"go_qoidecode/internal/source"
	"go_qoidecode/pkg/qoi"
)

type config struct {
	outDir  string
	format  string
	scale   float64
	flip    string
	cache   int
	workers int
	strict  bool
	chunks  bool
	verbose bool
}

func parseFlags(args []string) (config, []string, error) {
	var cfg config
	fs := flag.NewFlagSet("go_qoidecode", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: go_qoidecode [flags] file.qoi[.zst]...\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.outDir, "o", ".", "output directory")
	fs.StringVar(&cfg.format, "format", "png", "output format: png, bmp or tiff")
	fs.Float64Var(&cfg.scale, "scale", 1, "resize factor applied before writing")
	fs.StringVar(&cfg.flip, "flip", "", "mirror the output: h or v")
	fs.IntVar(&cfg.cache, "cache", 16, "number of decoded images kept for identical inputs")
	fs.IntVar(&cfg.workers, "workers", 0, "concurrent decodes (0 = GOMAXPROCS)")
	fs.BoolVar(&cfg.strict, "strict", false, "reject invalid headers and pixel count mismatches")
	fs.BoolVar(&cfg.chunks, "chunks", false, "print the chunk stream instead of writing images")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return cfg, nil, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return cfg, nil, flag.ErrHelp
	}
	return cfg, fs.Args(), nil
}

func main() {
	cfg, files, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg, files, os.Stdout); err != nil {
		slog.Error("decode failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg config, files []string, stdout io.Writer) error {
	format, err := export.ParseFormat(cfg.format)
	if err != nil {
		return err
	}
	exporter, err := export.New(
		export.WithFormat(format),
		export.WithScale(cfg.scale),
		export.WithFlip(export.Flip(cfg.flip)),
	)
	if err != nil {
		return err
	}
	decoder, err := batch.New(
		batch.WithCacheSize(cfg.cache),
		batch.WithWorkers(cfg.workers),
		batch.WithStrict(cfg.strict),
	)
	if err != nil {
		return err
	}

	if !cfg.chunks {
		if err := checkOutputs(exporter, cfg.outDir, files); err != nil {
			return err
		}
	}

	inputs := make([]batch.Input, 0, len(files))
	for _, name := range files {
		data, err := source.Load(name)
		if err != nil {
			return fmt.Errorf("load input: %w", err)
		}
		inputs = append(inputs, batch.Input{Name: name, Data: data})
	}

	var failed int
	for _, res := range decoder.DecodeAll(inputs) {
		if res.Err != nil {
			slog.Error("decode", slog.String("file", res.Name), slog.Any("err", res.Err))
			failed++
			continue
		}
		stats := qoi.CountChunks(res.File.Chunks)
		slog.Info("decoded",
			slog.String("file", res.Name),
			slog.String("header", res.File.Header.String()),
			slog.Int("pixels", len(res.Image.Pixels())),
			slog.Bool("cached", res.Cached),
			slog.String("chunks", stats.String()))

		if cfg.chunks {
			if err := dumpChunks(stdout, res.Name, res.File); err != nil {
				return err
			}
			continue
		}
		path, err := exporter.WriteFile(cfg.outDir, res.Name, res.Image)
		if err != nil {
			return fmt.Errorf("export %s: %w", res.Name, err)
		}
		slog.Info("wrote", slog.String("file", path))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
	}
	return nil
}

func dumpChunks(w io.Writer, name string, file *qoi.File) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s %s\n", name, file.Header)
	offset := qoi.HeaderSize
	for i, chunk := range file.Chunks {
		fmt.Fprintf(bw, "%8d %6d %s\n", i, offset, chunk)
		offset += chunk.EncodedLen()
	}
	return bw.Flush()
}

// checkOutputs fails when two inputs would be written to the same file.
func checkOutputs(exporter *export.Exporter, dir string, files []string) error {
	seen := make(map[string]string, len(files))
	for _, name := range files {
		path := exporter.Path(dir, name)
		if prev, ok := seen[path]; ok {
			return fmt.Errorf("%s and %s both export to %s", prev, name, path)
		}
		seen[path] = name
	}
	return nil
}

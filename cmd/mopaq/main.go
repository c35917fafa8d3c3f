// Command mopaq inspects and extracts MPQ archives.
//
// It mirrors the classic extraction tool: header, hash table and block
// table dumps, listfile-driven member listings, and extraction to disk.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/arloliu/mopaq/archive"
)

func main() {
	app := &cli.App{
		Name:      "mopaq",
		Usage:     "read and extract MPQ archives",
		ArgsUsage: "<archive>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "headers",
				Aliases: []string{"I"},
				Usage:   "print header information from the archive",
			},
			&cli.BoolFlag{
				Name:    "hash-table",
				Aliases: []string{"H"},
				Usage:   "print the hash table",
			},
			&cli.BoolFlag{
				Name:    "block-table",
				Aliases: []string{"b"},
				Usage:   "print the block table",
			},
			&cli.BoolFlag{
				Name:    "skip-listfile",
				Aliases: []string{"s"},
				Usage:   "skip reading (listfile)",
			},
			&cli.BoolFlag{
				Name:    "list-files",
				Aliases: []string{"t"},
				Usage:   "list files inside the archive",
			},
			&cli.BoolFlag{
				Name:  "digests",
				Usage: "include content digests in the file listing",
			},
			&cli.BoolFlag{
				Name:    "extract",
				Aliases: []string{"x"},
				Usage:   "extract files from the archive",
			},
			&cli.StringFlag{
				Name:    "listfile",
				Aliases: []string{"L"},
				Usage:   "path to an external listfile",
			},
			&cli.BoolFlag{
				Name:  "force-decompress",
				Usage: "decompress every sector of compressed files regardless of stored size",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "fail on stubbed codecs instead of returning raw bytes",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		cli.ShowAppHelp(c)
		return cli.Exit("expected exactly one archive path", 2)
	}
	path := c.Args().First()

	var opts []archive.Option
	if c.Bool("skip-listfile") {
		opts = append(opts, archive.WithoutListfile())
	}
	if c.Bool("force-decompress") {
		opts = append(opts, archive.WithForceDecompress())
	}
	if c.Bool("strict") {
		opts = append(opts, archive.WithStrictCodecs())
	}
	if external := c.String("listfile"); external != "" {
		names, err := readListfile(external)
		if err != nil {
			return err
		}
		opts = append(opts, archive.WithListfile(names))
	}

	a, err := archive.OpenFile(path, opts...)
	if err != nil {
		return err
	}
	defer a.Close()

	if c.Bool("headers") {
		if err := a.WriteHeaderInfo(os.Stdout); err != nil {
			return err
		}
	}
	if c.Bool("hash-table") {
		if err := a.WriteHashTable(os.Stdout); err != nil {
			return err
		}
	}
	if c.Bool("block-table") {
		if err := a.WriteBlockTable(os.Stdout); err != nil {
			return err
		}
	}
	if c.Bool("list-files") {
		if err := a.WriteFileList(os.Stdout, c.Bool("digests")); err != nil {
			return err
		}
	}
	if c.Bool("extract") {
		dir := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := a.ExtractToDir(dir); err != nil {
			return err
		}
	}

	return nil
}

func readListfile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read external listfile: %w", err)
	}

	var names []string
	for _, line := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}

	return names, nil
}

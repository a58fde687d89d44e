/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// scriptdraft is the command-line interface to the screenplay toolkit:
// converting between formats, inspecting scripts and maintaining the
// workspace catalog.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"scriptdraft/internal/config"
	"scriptdraft/internal/crash"
	"scriptdraft/internal/element"
	"scriptdraft/internal/format"
	"scriptdraft/internal/log"
	"scriptdraft/internal/screenplay"
	"scriptdraft/internal/storage"
	"scriptdraft/internal/version"
)

func main() {
	defer crash.Recover(nil)

	cmd := &cli.Command{
		Name:    "scriptdraft",
		Usage:   "screenplay toolkit: convert, inspect and index scripts",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the config file",
			},
		},
		Commands: []*cli.Command{
			convertCommand(),
			infoCommand(),
			indexCommand(),
			watchCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.L().Error("command failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config path (flag, then default location) and
// initializes logging from it.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	path := cmd.String("config")
	if path == "" {
		var err error
		path, err = config.Path()
		if err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	log.Init(log.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	return cfg, nil
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "convert a screenplay between sdft, fdx and plain text",
		ArgsUsage: "INPUT OUTPUT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "input format (default: by extension)"},
			&cli.StringFlag{Name: "to", Usage: "output format (default: by extension)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("convert needs INPUT and OUTPUT arguments")
			}
			in, out := cmd.Args().Get(0), cmd.Args().Get(1)
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			from, err := resolveFormat(cmd.String("from"), in)
			if err != nil {
				return err
			}
			to, err := resolveFormat(cmd.String("to"), out)
			if err != nil {
				return err
			}
			data, err := storage.OpenDocumentFile(in)
			if err != nil {
				return err
			}
			doc, err := format.Load(data, from)
			if err != nil {
				return err
			}
			if cfg.Editor.StyleProfile != "" {
				p, err := element.LoadProfile(cfg.Editor.StyleProfile)
				if err != nil {
					return fmt.Errorf("style profile: %w", err)
				}
				doc.ApplyStyleProfile(p)
			}
			encoded, err := format.Save(doc, to)
			if err != nil {
				return err
			}
			if err := storage.SaveDocumentFile(out, encoded); err != nil {
				return err
			}
			log.L().Info("converted", "input", in, "from", from.String(), "output", out, "to", to.String(), "elements", doc.Len())
			return nil
		},
	}
}

func resolveFormat(name, path string) (format.Format, error) {
	if name != "" {
		f, ok := format.ParseFormat(name)
		if !ok {
			return 0, fmt.Errorf("unknown format %q", name)
		}
		return f, nil
	}
	f, ok := format.FromPath(path)
	if !ok {
		return 0, fmt.Errorf("cannot infer format from %q, use --from/--to", path)
	}
	return f, nil
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "show metadata, cast, locations and page count of a script",
		ArgsUsage: "FILE",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("info needs a FILE argument")
			}
			path := cmd.Args().Get(0)
			if _, err := loadConfig(cmd); err != nil {
				return err
			}
			doc, err := openDocument(path)
			if err != nil {
				return err
			}
			printInfo(cmd.Writer, path, doc)
			return nil
		},
	}
}

func openDocument(path string) (*screenplay.Document, error) {
	f, ok := format.FromPath(path)
	if !ok {
		return nil, fmt.Errorf("cannot infer format from %q", path)
	}
	data, err := storage.OpenDocumentFile(path)
	if err != nil {
		return nil, err
	}
	return format.Load(data, f)
}

func printInfo(w io.Writer, path string, doc *screenplay.Document) {
	fmt.Fprintf(w, "file:       %s\n", path)
	fmt.Fprintf(w, "title:      %s\n", doc.Meta.Title)
	fmt.Fprintf(w, "author:     %s\n", doc.Meta.Author)
	fmt.Fprintf(w, "elements:   %d\n", doc.Len())
	fmt.Fprintf(w, "pages:      %d\n", len(format.Paginate(doc)))
	fmt.Fprintf(w, "characters: %d\n", len(doc.Characters()))
	for _, c := range doc.Characters() {
		fmt.Fprintf(w, "  %s\n", c)
	}
	fmt.Fprintf(w, "locations:  %d\n", len(doc.Locations()))
	for _, l := range doc.Locations() {
		fmt.Fprintf(w, "  %s\n", l)
	}
}

func indexCommand() *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "rebuild the workspace catalog and query it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Usage: "workspace root (default: from config)"},
			&cli.BoolFlag{Name: "characters", Usage: "list distinct characters after scanning"},
			&cli.BoolFlag{Name: "locations", Usage: "list distinct locations after scanning"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			root := cmd.String("root")
			if root == "" {
				root = cfg.Workspace.Root
			}
			cat, err := storage.OpenCatalog(cfg.CatalogPath())
			if err != nil {
				return err
			}
			defer cat.Close()
			n, err := cat.Scan(root)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.Writer, "indexed %d documents under %s\n", n, root)
			if cmd.Bool("characters") {
				names, err := cat.Characters()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.Writer, name)
				}
			}
			if cmd.Bool("locations") {
				names, err := cat.Locations()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.Writer, name)
				}
			}
			return nil
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "watch the workspace and keep the catalog current",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Usage: "workspace root (default: from config)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			root := cmd.String("root")
			if root == "" {
				root = cfg.Workspace.Root
			}
			cat, err := storage.OpenCatalog(cfg.CatalogPath())
			if err != nil {
				return err
			}
			defer cat.Close()
			if _, err := cat.Scan(root); err != nil {
				return err
			}
			w, err := storage.NewWatcher(root)
			if err != nil {
				return err
			}
			defer w.Close()
			log.L().Info("watching workspace", "root", root)
			for {
				select {
				case <-ctx.Done():
					return nil
				case ch, ok := <-w.Changes():
					if !ok {
						return nil
					}
					switch ch.Kind {
					case storage.FileRemoved:
						if err := cat.Remove(ch.Path); err != nil {
							log.L().Warn("catalog remove failed", "path", ch.Path, "error", err)
						}
					case storage.FileModified:
						doc, err := openDocument(ch.Path)
						if err != nil {
							log.L().Warn("changed file not indexable", "path", ch.Path, "error", err)
							continue
						}
						if err := cat.IndexDocument(ch.Path, doc); err != nil {
							log.L().Warn("catalog update failed", "path", ch.Path, "error", err)
							continue
						}
						log.L().Info("reindexed", "path", ch.Path)
					}
				}
			}
		},
	}
}

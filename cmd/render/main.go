package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/reachsuite/emailbuilder/internal/domain"
	"github.com/reachsuite/emailbuilder/internal/service"
	"github.com/reachsuite/emailbuilder/pkg/emailblocks"
)

func main() {
	if err := run(context.Background(), os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run renders a stored template JSON file to <name>.html
func run(ctx context.Context, out io.Writer, args []string) error {
	flags := flag.NewFlagSet("render", flag.ContinueOnError)
	flags.SetOutput(out)
	outDir := flags.String("out", ".", "directory the HTML file is written to")
	preview := flags.Bool("preview", false, "render merge tags with sample contact data")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: render [-out dir] [-preview] <template.json>")
	}

	raw, err := os.ReadFile(flags.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to read template file: %w", err)
	}

	var template domain.Template
	if err := json.Unmarshal(raw, &template); err != nil {
		return fmt.Errorf("failed to decode template file: %w", err)
	}

	doc, repaired := template.Document(emailblocks.UUIDGenerator{})
	if repaired > 0 {
		fmt.Fprintf(out, "Repaired %d invalid blocks or styles\n", repaired)
	}

	html := emailblocks.GenerateHTML(doc.Blocks, doc.GlobalStyles, doc.Subject, doc.Preheader)
	if *preview {
		html, err = emailblocks.NewMergeTagRenderer().Render(ctx, html, emailblocks.SampleMergeData())
		if err != nil {
			return fmt.Errorf("failed to render merge tags: %w", err)
		}
	}

	path := filepath.Join(*outDir, service.ExportFilename(doc.Name))
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	fmt.Fprintf(out, "Wrote %d blocks to %s\n", len(doc.Blocks), path)
	return nil
}

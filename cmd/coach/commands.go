package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-coach-backend/internal/services"
)

// --- ingest ---

var ingestCmd = &cobra.Command{
	Use:   "ingest <path>...",
	Short: "Ingest .txt/.md files into the document library",
	Long: `Ingest text files into the document library.

Each file is chunked into paragraphs, categorized and saved. Files already in
the library (by name) are reported as duplicates and left untouched.

Examples:
  coach ingest ./notes/goals.md ./notes/journal.txt
  coach ingest ./notes/*.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		uploads := make([]services.Upload, 0, len(args))
		for _, p := range args {
			uploads = append(uploads, fileUpload(p))
		}

		out := cmd.OutOrStdout()
		n := 0
		for _, r := range a.library.Ingest(cmd.Context(), uploads) {
			switch r.Status {
			case services.IngestIngested:
				n++
				fmt.Fprintf(out, "%-10s %s → %s (%d chunks)\n", r.Status, r.Filename, r.Category, r.Chunks)
			default:
				fmt.Fprintf(out, "%-10s %s %s\n", r.Status, r.Filename, r.Reason)
			}
		}
		fmt.Fprintf(out, "%d of %d file(s) ingested\n", n, len(args))
		return nil
	},
}

// fileUpload offers a local file for ingestion. The size is unknown (-1)
// when the file cannot be stat'ed; the open error then surfaces per file.
func fileUpload(path string) services.Upload {
	size := int64(-1)
	if fi, err := os.Stat(path); err == nil {
		size = fi.Size()
	}
	return services.Upload{
		Filename: filepath.Base(path),
		Size:     size,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the coach a question",
	Long: `Ask the coach a question grounded in the document library.

Examples:
  coach ask "How should I plan my week?"
  coach ask --category CAREER "What should I focus on this quarter?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		msg, err := a.conversation.Ask(cmd.Context(), strings.Join(args, " "), category)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, msg.Content)
		if src := msg.DisplaySources(); len(src) > 0 {
			fmt.Fprintf(out, "\nSources: %s\n", strings.Join(src, ", "))
		}
		return nil
	},
}

func init() {
	askCmd.Flags().String("category", "", "restrict retrieval to one category (default: all)")
}

// --- documents ---

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List documents in the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		docs, err := a.library.List(category)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no documents")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FILENAME\tCATEGORY\tCHUNKS\tSIZE\tUPLOADED")
		for _, d := range docs {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
				d.Filename, d.Category, d.ChunkCount, d.Size, d.UploadedAt.Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	},
}

func init() {
	documentsCmd.Flags().String("category", "", "only list documents of this category")
}

// --- settings ---

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or reset the coaching settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current coaching settings as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()
		return printJSON(cmd.OutOrStdout(), a.coaching.Get())
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default coaching settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		cur, err := a.coaching.Reset(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), cur)
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsResetCmd)
}

// --- clear ---

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every document and the whole transcript",
	Long: `Delete every document and the whole conversation transcript.
Coaching settings are kept. This cannot be undone; pass --yes to confirm.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to clear all data without --yes")
		}

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.library.ClearAll(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "all documents and messages cleared")
		return nil
	},
}

func init() {
	clearCmd.Flags().Bool("yes", false, "confirm the irreversible clear")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

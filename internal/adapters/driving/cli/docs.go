package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
	"github.com/polaris-labs/polaris-cli/internal/logger"
)

var (
	docsIndexRebuild bool
	docsWatchSettle  time.Duration
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage uploaded documents",
	Long:  `Lists, uploads, deletes and indexes documents on the POLARIS backend.`,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	RunE:  runDocsList,
}

var docsUploadCmd = &cobra.Command{
	Use:   "upload [files...]",
	Short: "Upload documents",
	Long: `Uploads one or more files to the backend. Files are sent one at a
time; a single failure does not abort the rest of the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDocsUpload,
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsDelete,
}

var docsIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Trigger an indexing run",
	RunE:  runDocsIndex,
}

var docsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	RunE:  runDocsStats,
}

var docsWatchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and upload new files",
	Long: `Watches a directory and uploads every file created in it. Useful as
a drop folder: anything saved into the directory lands on the backend.
Stops on Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocsWatch,
}

func init() {
	docsIndexCmd.Flags().BoolVar(&docsIndexRebuild, "rebuild", false, "rebuild the index from scratch")
	docsWatchCmd.Flags().DurationVar(&docsWatchSettle, "settle", 500*time.Millisecond, "delay before uploading a newly created file")

	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsUploadCmd)
	docsCmd.AddCommand(docsDeleteCmd)
	docsCmd.AddCommand(docsIndexCmd)
	docsCmd.AddCommand(docsStatsCmd)
	docsCmd.AddCommand(docsWatchCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Refresh(context.Background()); err != nil {
		return fmt.Errorf("listing documents failed: %w", err)
	}

	docs := documentService.Documents()
	if len(docs) == 0 {
		cmd.Println("No documents uploaded.")
		return nil
	}

	cmd.Printf("Documents (%d):\n\n", len(docs))
	for _, d := range docs {
		indexed := ""
		if d.Indexed {
			indexed = "  indexed"
		}
		cmd.Printf("  [%d] %s\n", d.ID, d.Title)
		cmd.Printf("      %s  %d bytes  %s%s\n\n", d.FileType, d.SizeBytes, d.Status, indexed)
	}
	return nil
}

func runDocsUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	files := make([]domain.UploadFile, 0, len(args))
	handles := make([]*os.File, 0, len(args))
	defer func() {
		for _, h := range handles {
			h.Close()
		}
	}()

	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		handles = append(handles, f)
		files = append(files, domain.UploadFile{
			Name:    filepath.Base(path),
			Content: f,
		})
	}

	report, err := documentService.Upload(context.Background(), files)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Uploaded %d of %d files.\n", report.Uploaded, report.Attempted)
	for _, failure := range report.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "  failed: %s: %v\n", failure.Name, failure.Err)
	}
	if len(report.Failures) > 0 {
		return fmt.Errorf("%d of %d uploads failed", len(report.Failures), report.Attempted)
	}
	return nil
}

func runDocsDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document id %q", args[0])
	}

	if err := documentService.Delete(context.Background(), id); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	cmd.Printf("Deleted document %d.\n", id)
	return nil
}

func runDocsIndex(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.TriggerIndexing(context.Background(), docsIndexRebuild); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if docsIndexRebuild {
		cmd.Println("Index rebuild triggered.")
	} else {
		cmd.Println("Indexing triggered.")
	}
	return printStats(cmd)
}

func runDocsStats(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.RefreshStats(context.Background()); err != nil {
		return fmt.Errorf("fetching stats failed: %w", err)
	}
	return printStats(cmd)
}

func printStats(cmd *cobra.Command) error {
	stats := documentService.Stats()
	cmd.Printf("Indexed documents:   %d\n", stats.IndexedDocuments)
	cmd.Printf("Vocabulary size:     %d\n", stats.VocabularySize)
	cmd.Printf("Processed documents: %d\n", stats.ProcessedDocuments)
	cmd.Printf("Processed sources:   %d\n", stats.ProcessedSources)
	return nil
}

func runDocsWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for new files (Ctrl+C to stop)...\n", dir)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if err := uploadWatched(ctx, cmd, event.Name); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "  failed: %s: %v\n", event.Name, err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("docs watch: %v", err)
		}
	}
}

// uploadWatched uploads one newly created file after letting the writer
// finish.
func uploadWatched(ctx context.Context, cmd *cobra.Command, path string) error {
	// Give the creating process time to finish writing.
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(docsWatchSettle):
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	report, err := documentService.Upload(ctx, []domain.UploadFile{
		{Name: filepath.Base(path), Content: f},
	})
	if err != nil {
		return err
	}
	if len(report.Failures) > 0 {
		return report.Failures[0].Err
	}

	cmd.Printf("  uploaded %s\n", filepath.Base(path))
	return nil
}

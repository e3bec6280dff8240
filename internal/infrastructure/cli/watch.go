package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/proposer/internal/domain"
	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
	"github.com/felixgeelhaar/proposer/internal/infrastructure/sse"
	"github.com/felixgeelhaar/proposer/internal/infrastructure/storage"
	"github.com/felixgeelhaar/proposer/internal/infrastructure/watch"
)

var (
	watchDebounceMs int
	watchServeAddr  string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and re-validate documents on change",
	Long: `Watches .proposer/ for edits to the stored request, breakdown and
proposal. Whenever the proposal changes it is re-validated and any advisory
warnings are printed. Useful while hand-editing proposal.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}

		services, err := loadServices(cwd)
		if err != nil {
			return err
		}
		if !services.Workspace.Repo.IsInitialized() {
			return NewCLIError("proposer is not initialized in this directory", "Run 'proposer init' first", nil)
		}

		var stream *sse.Handler
		if watchServeAddr != "" {
			stream = sse.NewHandler()
		}

		watcher, err := watch.NewWorkspaceWatcher(cwd, time.Duration(watchDebounceMs)*time.Millisecond, func(ev watch.ChangeEvent) {
			name := filepath.Base(ev.Path)
			fmt.Printf("%s %s (%s)\n", labelStyle.Render("changed:"), name, ev.ChangeType)
			if stream != nil {
				stream.Publish(domain.Event{
					ID:        uuid.New().String(),
					Timestamp: time.Now(),
					Action:    "workspace." + ev.ChangeType,
					Actor:     "fs",
					Metadata:  map[string]interface{}{"file": name},
				})
			}
			if name == storage.ProposalFile && ev.ChangeType != "remove" {
				revalidateProposal(services.Workspace.Repo)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			cancel()
		}()

		if stream != nil {
			mux := http.NewServeMux()
			mux.Handle("/events", stream)
			srv := &http.Server{Addr: watchServeAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					fmt.Printf("%s event stream server: %v\n", warnStyle.Render("!"), err)
				}
			}()
			go func() {
				<-ctx.Done()
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer shutdownCancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
			fmt.Printf("Streaming change events at http://%s/events\n", watchServeAddr)
		}

		fmt.Printf("Watching %s (Ctrl+C to stop)\n", filepath.Join(cwd, storage.ProposerDir))
		if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("watcher stopped: %w", err)
		}
		fmt.Println("Watcher stopped.")
		return nil
	},
}

func revalidateProposal(repo *storage.FilesystemRepository) {
	doc, err := repo.LoadProposal()
	if err != nil {
		fmt.Printf("%s could not read proposal: %v\n", warnStyle.Render("!"), err)
		return
	}
	if doc == nil {
		return
	}

	teamSize := 0
	if req, err := repo.LoadRequest(); err == nil && req != nil {
		teamSize = len(req.Team)
	}

	warnings := proposal.Validate(doc, teamSize)
	if len(warnings) == 0 {
		fmt.Println(okStyle.Render("proposal OK, no validation warnings"))
		return
	}
	printWarnings(warnings)
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounceMs, "debounce-ms", 500, "Debounce interval for change events in milliseconds")
	watchCmd.Flags().StringVar(&watchServeAddr, "serve", "", "Also stream change events over SSE on this address (e.g. localhost:8099)")
	RootCmd.AddCommand(watchCmd)
}

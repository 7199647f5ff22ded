package main

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"orcaeletricista/collections"
	"orcaeletricista/config"
	"orcaeletricista/handlers"
	"orcaeletricista/services"
)

func main() {
	cfg := config.Load()
	app := pocketbase.New()

	app.RootCmd.AddCommand(newRenderCmd(app, cfg))

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		deps, err := setupDeps(app, cfg)
		if err != nil {
			return err
		}

		sweeper, err := services.StartPreviewSweeper(deps.Documents.Previews(), cfg.Preview.SweepSchedule, cfg.Preview.TTL)
		if err != nil {
			return err
		}
		app.OnTerminate().BindFunc(func(te *core.TerminateEvent) error {
			<-sweeper.Stop().Done()
			return te.Next()
		})

		handlers.RegisterRoutes(se.Router, deps)
		log.Printf("%s: serving %d services and %d materials", cfg.App.Name, len(deps.Catalog.Services), len(deps.Catalog.Materials))
		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// setupDeps creates the collections, seeds the price tables and loads the
// persisted state.
func setupDeps(app *pocketbase.PocketBase, cfg *config.Config) (*handlers.Deps, error) {
	collections.Setup(app)
	if err := collections.Seed(app); err != nil {
		log.Printf("Warning: seed data failed: %v", err)
	}

	catalog, err := services.LoadCatalog(app)
	if err != nil {
		return nil, err
	}
	state, err := services.NewStateController(services.NewRecordStateStore(app, cfg.State.Key))
	if err != nil {
		return nil, err
	}

	return &handlers.Deps{
		Catalog:   catalog,
		State:     state,
		Documents: services.NewDocumentGenerator(cfg.Export.Dir, cfg.App.Location, nil),
	}, nil
}

// newRenderCmd renders one stored quote from the command line, either into
// the export directory or as a preview that is discarded after reporting.
func newRenderCmd(app *pocketbase.PocketBase, cfg *config.Config) *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "render <quoteId>",
		Short: "Render a stored quote to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := setupDeps(app, cfg)
			if err != nil {
				return err
			}
			quote, err := deps.State.FindQuote(args[0])
			if err != nil {
				return err
			}

			mode := services.RenderSave
			if preview {
				mode = services.RenderPreview
			}
			res, err := deps.Documents.Render(quote, mode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Preview != nil {
				fmt.Fprintf(out, "preview %s: %s (%d bytes)\n", res.Preview.Handle, res.Preview.Filename, len(res.Preview.Data))
				return deps.Documents.Previews().Release(res.Preview.Handle)
			}
			fmt.Fprintln(out, res.Path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&preview, "preview", false, "render in memory instead of saving to the export directory")
	return cmd
}

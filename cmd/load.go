package cmd

import (
	"context"
	"fmt"
	"os"

	"asset-loader/core/config"
	"asset-loader/core/database"
	"asset-loader/core/loader"
	"asset-loader/core/logger"
	"asset-loader/core/resource"
	"asset-loader/core/storage"
	"asset-loader/feature/batch"
	"asset-loader/feature/history"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// manifest is the YAML document describing a one-shot load.
type manifest struct {
	BaseURL   string          `yaml:"base_url"`
	Parallel  *bool           `yaml:"parallel"`
	Resources []manifestEntry `yaml:"resources"`
}

type manifestEntry struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	LoadType    string `yaml:"load_type"`
	XhrType     string `yaml:"xhr_type"`
	CrossOrigin bool   `yaml:"cross_origin"`
}

var (
	loadSerial bool
	loadRecord bool
)

// loadCmd runs a single load pass from a manifest file.
var loadCmd = &cobra.Command{
	Use:   "load <manifest.yaml>",
	Short: "Load the resources listed in a manifest",
	Long: `Reads a YAML manifest of named resources, loads them through the
queued loader, and reports progress and failures. Exits non-zero when any
resource fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		m, err := readManifest(args[0])
		if err != nil {
			return err
		}

		baseURL := cfg.Loader.BaseURL
		if m.BaseURL != "" {
			baseURL = m.BaseURL
		}

		fetchers := map[resource.LoadType]resource.Fetcher{
			resource.LoadTypeXHR: resource.NewHTTPFetcher(nil),
		}
		if store, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Storage client unavailable, storage resources will fail", zap.Error(err))
		} else {
			fetchers[resource.LoadTypeStorage] = resource.NewStorageFetcher(store, cfg.Storage.Bucket)
		}

		l := loader.New(loader.Config{
			BaseURL:     baseURL,
			Concurrency: cfg.Loader.Concurrency,
			Fetchers:    fetchers,
		}, logg)

		specs := make([]batch.ResourceSpec, 0, len(m.Resources))
		for _, e := range m.Resources {
			specs = append(specs, batch.ResourceSpec{
				Name:        e.Name,
				URL:         e.URL,
				LoadType:    e.LoadType,
				XhrType:     e.XhrType,
				CrossOrigin: e.CrossOrigin,
			})
		}

		parallel := cfg.Loader.Parallel
		if m.Parallel != nil {
			parallel = *m.Parallel
		}
		if loadSerial {
			parallel = false
		}

		// The batch service drives the pass so the CLI and the HTTP API
		// share one execution path, including optional history recording.
		var recorder batch.Recorder
		if loadRecord {
			db, err := database.Connect(cfg.Database)
			if err != nil {
				return fmt.Errorf("history recording requested but database unavailable: %w", err)
			}
			store := history.NewStore(db)
			if err := store.Migrate(); err != nil {
				return err
			}
			recorder = store
		}

		done := make(chan batch.Status, 1)
		svc := batch.NewService(func() *loader.Loader { return l }, parallel, logg, waitRecorder{recorder: recorder, done: done})

		l.OnProgress(func(r *resource.Resource) {
			logg.Debug("progress", zap.String("name", r.Name), zap.Float64("total", l.Progress()))
		})

		st, err := svc.Submit(batch.SubmitRequest{Parallel: &parallel, Resources: specs})
		if err != nil {
			return err
		}
		logg.Info("Loading manifest",
			zap.String("batch", st.ID),
			zap.String("mode", st.Mode),
			zap.Int("resources", len(specs)),
		)

		final := <-done
		for _, r := range final.Results {
			if r.Error != "" {
				logg.Error("Resource failed", zap.String("name", r.Name), zap.String("url", r.URL), zap.String("error", r.Error))
			}
		}
		if failed := final.Failed(); failed > 0 {
			return fmt.Errorf("%d of %d resources failed", failed, len(final.Results))
		}
		logg.Info("All resources loaded", zap.Int("resources", len(final.Results)))
		return nil
	},
}

// waitRecorder forwards to an optional inner recorder and signals the CLI
// when the batch is done.
type waitRecorder struct {
	recorder batch.Recorder
	done     chan batch.Status
}

func (w waitRecorder) Record(ctx context.Context, st batch.Status) error {
	defer func() { w.done <- st }()
	if w.recorder != nil {
		return w.recorder.Record(ctx, st)
	}
	return nil
}

func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Resources) == 0 {
		return nil, fmt.Errorf("manifest lists no resources")
	}
	return &m, nil
}

func init() {
	loadCmd.Flags().BoolVar(&loadSerial, "serial", false, "load resources one at a time in manifest order")
	loadCmd.Flags().BoolVar(&loadRecord, "record", false, "persist the batch outcome to the history database")
	RootCmd.AddCommand(loadCmd)
}

package batch

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"asset-loader/core/loader"
	"asset-loader/core/resource"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// States of a batch run.
const (
	StateRunning  = "running"
	StateComplete = "complete"
)

// ResourceSpec describes one resource to load, as submitted by a client.
type ResourceSpec struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	LoadType    string `json:"load_type,omitempty"` // "http" (default) or "storage"
	XhrType     string `json:"xhr_type,omitempty"`
	CrossOrigin bool   `json:"cross_origin,omitempty"`
}

// SubmitRequest is the payload for starting a batch.
type SubmitRequest struct {
	// Parallel overrides the configured default execution strategy.
	Parallel  *bool          `json:"parallel,omitempty"`
	Resources []ResourceSpec `json:"resources"`
}

// ResourceResult is the outcome of one resource in a finished batch.
type ResourceResult struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Size  int    `json:"size"`
	Error string `json:"error,omitempty"`
}

// Status is a point-in-time view of a batch run.
type Status struct {
	ID         string           `json:"id"`
	Mode       string           `json:"mode"` // parallel or serial
	State      string           `json:"state"`
	Progress   float64          `json:"progress"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt *time.Time       `json:"finished_at,omitempty"`
	Results    []ResourceResult `json:"results,omitempty"`
}

// Failed counts the results that carry an error.
func (s Status) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Error != "" {
			n++
		}
	}
	return n
}

// Recorder persists finished batches. Implementations must tolerate being
// called from the loader's completion callback.
type Recorder interface {
	Record(ctx context.Context, st Status) error
}

// LoaderFactory builds a fresh loader per batch run.
type LoaderFactory func() *loader.Loader

// Service runs loader batches and tracks their status.
type Service struct {
	newLoader       LoaderFactory
	defaultParallel bool
	logger          *zap.Logger
	recorder        Recorder // optional

	mu   sync.Mutex
	runs map[string]*run
}

type run struct {
	loader *loader.Loader

	mu     sync.Mutex
	status Status
}

// NewService creates a new batch service. recorder may be nil when history
// persistence is disabled.
func NewService(newLoader LoaderFactory, defaultParallel bool, logger *zap.Logger, recorder Recorder) *Service {
	return &Service{
		newLoader:       newLoader,
		defaultParallel: defaultParallel,
		logger:          logger,
		recorder:        recorder,
		runs:            make(map[string]*run),
	}
}

// Submit validates the request and starts a batch run. It returns the
// initial status; progress and completion are observed via Get.
func (s *Service) Submit(req SubmitRequest) (Status, error) {
	if len(req.Resources) == 0 {
		return Status{}, fmt.Errorf("batch needs at least one resource")
	}

	seen := make(map[string]struct{}, len(req.Resources))
	specs := make([]struct {
		name, url string
		opts      resource.Options
	}, 0, len(req.Resources))
	for _, spec := range req.Resources {
		if spec.Name == "" || spec.URL == "" {
			return Status{}, fmt.Errorf("resource name and url are required")
		}
		if _, dup := seen[spec.Name]; dup {
			return Status{}, fmt.Errorf("duplicate resource name %q", spec.Name)
		}
		seen[spec.Name] = struct{}{}

		opts, err := parseOptions(spec)
		if err != nil {
			return Status{}, err
		}
		specs = append(specs, struct {
			name, url string
			opts      resource.Options
		}{spec.Name, spec.URL, opts})
	}

	parallel := s.defaultParallel
	if req.Parallel != nil {
		parallel = *req.Parallel
	}
	mode := "serial"
	if parallel {
		mode = "parallel"
	}

	l := s.newLoader()
	for _, sp := range specs {
		l.Add(sp.name, sp.url, sp.opts)
	}

	r := &run{
		loader: l,
		status: Status{
			ID:        uuid.NewString(),
			Mode:      mode,
			State:     StateRunning,
			StartedAt: time.Now().UTC(),
		},
	}

	s.mu.Lock()
	s.runs[r.status.ID] = r
	s.mu.Unlock()

	s.logger.Info("batch submitted",
		zap.String("batch", r.status.ID),
		zap.String("mode", mode),
		zap.Int("resources", len(specs)),
	)

	// The run outlives the submitting request.
	l.Load(context.Background(), parallel, func(res map[string]*resource.Resource) {
		s.finish(r, res)
	})

	return r.snapshot(), nil
}

func (s *Service) finish(r *run, res map[string]*resource.Resource) {
	now := time.Now().UTC()

	results := make([]ResourceResult, 0, len(res))
	for _, rs := range res {
		result := ResourceResult{Name: rs.Name, URL: rs.URL, Size: len(rs.Data)}
		if rs.Err != nil {
			result.Error = rs.Err.Error()
		}
		results = append(results, result)
	}

	r.mu.Lock()
	r.status.State = StateComplete
	r.status.Progress = 100
	r.status.FinishedAt = &now
	r.status.Results = results
	st := r.status
	r.mu.Unlock()

	s.logger.Info("batch finished",
		zap.String("batch", st.ID),
		zap.Int("resources", len(st.Results)),
		zap.Int("failed", st.Failed()),
	)

	if s.recorder != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.recorder.Record(ctx, st); err != nil {
			s.logger.Warn("failed to record batch history",
				zap.String("batch", st.ID),
				zap.Error(err),
			)
		}
	}
}

// Get returns the status of a single run.
func (s *Service) Get(id string) (Status, bool) {
	s.mu.Lock()
	r, ok := s.runs[id]
	s.mu.Unlock()
	if !ok {
		return Status{}, false
	}
	return r.snapshot(), true
}

// List returns the status of every known run, most recent first.
func (s *Service) List() []Status {
	s.mu.Lock()
	runs := make([]*run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	s.mu.Unlock()

	out := make([]Status, 0, len(runs))
	for _, r := range runs {
		out = append(out, r.snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out
}

func (r *run) snapshot() Status {
	r.mu.Lock()
	st := r.status
	r.mu.Unlock()

	if st.State == StateRunning {
		st.Progress = r.loader.Progress()
	}
	st.Results = append([]ResourceResult(nil), st.Results...)
	return st
}

func parseOptions(spec ResourceSpec) (resource.Options, error) {
	opts := resource.Options{
		CrossOrigin: spec.CrossOrigin,
		XhrType:     resource.XhrResponseType(spec.XhrType),
	}
	switch spec.LoadType {
	case "", "http", "xhr":
		opts.LoadType = resource.LoadTypeXHR
	case "storage":
		opts.LoadType = resource.LoadTypeStorage
	default:
		return resource.Options{}, fmt.Errorf("unknown load type %q", spec.LoadType)
	}
	return opts, nil
}

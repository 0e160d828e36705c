package app

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"dataview/domain/analysis"
	"dataview/internal"
	"dataview/internal/errors"
	"dataview/internal/session"
	"dataview/ports"
)

// PipelineState represents the upload pipeline's lifecycle position.
type PipelineState string

const (
	StateIdle       PipelineState = "idle"
	StateValidating PipelineState = "validating"
	StateUploading  PipelineState = "uploading"
)

// MaxUploadBytes is the size ceiling for a candidate file (10 MiB).
const MaxUploadBytes = 10 * 1024 * 1024

// allowedExtensions are the file types the service accepts.
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// UploadPipeline drives the upload request lifecycle: local validation,
// the service call, and commitment of the active result.
//
// Overlapping uploads are ordered by a monotonically increasing sequence
// number. A response only commits if no newer upload has started since it
// was issued, so the active result always reflects the most recently
// initiated request whose response has arrived.
type UploadPipeline struct {
	mu       sync.Mutex
	analyzer ports.AnalyzerPort
	history  *HistoryCache
	logger   *internal.Logger

	state    PipelineState
	seq      uint64
	active   *analysis.Result
	lastErr  error
	fileName string
}

// NewUploadPipeline creates an idle pipeline.
func NewUploadPipeline(analyzer ports.AnalyzerPort, logger *internal.Logger) *UploadPipeline {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &UploadPipeline{
		analyzer: analyzer,
		logger:   logger,
		state:    StateIdle,
	}
}

// AttachHistory wires a history cache to refresh after successful uploads.
func (p *UploadPipeline) AttachHistory(history *HistoryCache) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = history
}

// Validate checks the candidate file's extension and size. It performs no
// network access.
func (p *UploadPipeline) Validate(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return errors.ValidationError("Only CSV or XLSX files are supported")
	}
	if size > MaxUploadBytes {
		return errors.ValidationError("File is too large (max 10 MB)")
	}
	return nil
}

// Upload validates the file and, if valid, submits it to the service. The
// returned values reflect this call's own outcome; the pipeline's active
// result and error state additionally honor the staleness rule, so a late
// response for a superseded upload never overwrites newer state.
func (p *UploadPipeline) Upload(ctx context.Context, file ports.UploadFile, sess session.Session) (*analysis.Result, error) {
	if err := p.Validate(file.Name, file.Size); err != nil {
		p.mu.Lock()
		p.state = StateIdle
		p.lastErr = err
		p.mu.Unlock()
		return nil, err
	}

	seq := p.begin(file.Name)
	p.logger.Debug("[Pipeline] upload #%d started: %s", seq, file.Name)

	result, err := p.analyzer.Upload(ctx, file, sess.Token)

	if committed := p.commit(seq, result, err); !committed {
		p.logger.Info("[Pipeline] upload #%d superseded; response discarded", seq)
		return result, err
	}

	if err == nil {
		if h := p.attachedHistory(); h != nil {
			h.Refresh(ctx, sess)
		}
	}
	return result, err
}

// Reset clears file selection, the active result and the error, returning
// the pipeline to idle. It does not abort in-flight transport calls;
// instead it advances the sequence counter so any response for a pre-reset
// upload arrives stale and is dropped rather than resurrected.
func (p *UploadPipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	p.state = StateIdle
	p.active = nil
	p.lastErr = nil
	p.fileName = ""
}

// State returns the current lifecycle state.
func (p *UploadPipeline) State() PipelineState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Busy reports whether an upload is in flight.
func (p *UploadPipeline) Busy() bool {
	return p.State() == StateUploading
}

// Result returns the active analysis result, or nil.
func (p *UploadPipeline) Result() *analysis.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Err returns the most recent surfaced error, or nil.
func (p *UploadPipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// FileName returns the name of the most recently submitted file.
func (p *UploadPipeline) FileName() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fileName
}

// SetActive replaces the active result directly (used when a history entry
// is activated). It counts as a new "latest" so in-flight uploads cannot
// overwrite it.
func (p *UploadPipeline) SetActive(result *analysis.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	p.state = StateIdle
	p.active = result
	p.lastErr = nil
}

// begin assigns the next sequence number and marks the pipeline busy.
func (p *UploadPipeline) begin(fileName string) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	p.state = StateUploading
	p.lastErr = nil
	p.fileName = fileName
	return p.seq
}

// commit applies a response to pipeline state unless a newer upload has
// started since seq was issued. Stale responses leave all state untouched.
func (p *UploadPipeline) commit(seq uint64, result *analysis.Result, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.seq {
		return false
	}

	p.state = StateIdle
	if err != nil {
		p.lastErr = err
		return true
	}
	p.active = result
	p.lastErr = nil
	return true
}

func (p *UploadPipeline) attachedHistory() *HistoryCache {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.history
}

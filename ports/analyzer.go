package ports

import (
	"context"
	"io"

	"dataview/domain/analysis"
)

// UploadFile carries the metadata and content stream of a candidate upload.
// Size is taken from file metadata; Content is streamed, never buffered by
// the pipeline.
type UploadFile struct {
	Name    string
	Size    int64
	Content io.Reader
}

// AnalyzerPort is the client-side surface of the remote analysis service.
// An empty token means anonymous mode; implementations attach a bearer
// header only when a token is present.
type AnalyzerPort interface {
	// Login exchanges credentials for an access token.
	Login(ctx context.Context, username, password string) (string, error)

	// Register creates an account and returns an access token.
	Register(ctx context.Context, email, password, name string) (string, error)

	// Upload submits a dataset and returns the analysis result.
	Upload(ctx context.Context, file UploadFile, token string) (*analysis.Result, error)

	// History lists the caller's prior analyses, most recent first.
	History(ctx context.Context, token string) ([]analysis.HistoryEntry, error)

	// Result fetches the full record of a prior analysis by id.
	Result(ctx context.Context, id, token string) (*analysis.Result, error)
}

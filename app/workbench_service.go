package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/compare"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/core"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/split"
	"github.com/eightchip/Custom-Merge-Excel-for-web/internal/errors"
	"github.com/eightchip/Custom-Merge-Excel-for-web/ports"
)

// CompareFilesRequest describes one file-to-file compare run.
type CompareFilesRequest struct {
	LeftPath   string
	RightPath  string
	LeftSheet  string
	RightSheet string
	Key        string
	Options    compare.Options
	OutputPath string
}

// CompareFilesResult summarizes a completed compare run. Fingerprint
// covers the merged result table, so re-running the same inputs must
// reproduce it.
type CompareFilesResult struct {
	RunID       core.RunID
	StartedAt   core.Timestamp
	Duration    time.Duration
	OutputPath  string
	Matched     int
	LeftOnly    int
	RightOnly   int
	Duplicates  int
	Fingerprint core.TableHash
	Log         []compare.LogEntry
}

// SplitFileRequest describes one file split run.
type SplitFileRequest struct {
	Path      string
	Sheet     string
	Key       string
	OutputDir string
	// Stem overrides the part file name prefix; defaults to the input
	// file name without its extension.
	Stem string
}

// SplitFileResult summarizes a completed split run.
type SplitFileResult struct {
	RunID     core.RunID
	StartedAt core.Timestamp
	Duration  time.Duration
	Paths     []string
}

// WorkbenchService orchestrates the file pipeline: read tables from
// disk, run the engine, write artifacts back out.
type WorkbenchService struct {
	reader ports.TableReaderPort
	writer ports.ResultWriterPort
	log    zerolog.Logger
}

// NewWorkbenchService creates a new workbench service
func NewWorkbenchService(reader ports.TableReaderPort, writer ports.ResultWriterPort, logger zerolog.Logger) *WorkbenchService {
	return &WorkbenchService{
		reader: reader,
		writer: writer,
		log:    logger.With().Str("component", "workbench").Logger(),
	}
}

// CompareFiles reads both input files, reconciles them on the key column
// and, when an output path is set, writes the compare artifact.
func (s *WorkbenchService) CompareFiles(ctx context.Context, req CompareFilesRequest) (*CompareFilesResult, error) {
	runID := core.NewRunID()
	startedAt := core.Now()
	log := s.log.With().Str("run_id", runID.String()).Logger()

	left, err := s.reader.ReadTable(ctx, req.LeftPath, req.LeftSheet)
	if err != nil {
		return nil, errors.IOError("failed to read left table", err)
	}
	right, err := s.reader.ReadTable(ctx, req.RightPath, req.RightSheet)
	if err != nil {
		return nil, errors.IOError("failed to read right table", err)
	}

	log.Debug().
		Str("left", req.LeftPath).
		Str("right", req.RightPath).
		Int("left_rows", left.RowCount()).
		Int("right_rows", right.RowCount()).
		Msg("tables loaded")

	out, err := compare.Run(compare.Input{
		Left:    *left,
		Right:   *right,
		Key:     req.Key,
		Options: req.Options,
	})
	if err != nil {
		return nil, err
	}

	if req.OutputPath != "" {
		if err := s.writer.WriteCompare(ctx, req.OutputPath, out); err != nil {
			return nil, errors.IOError("failed to write compare artifact", err)
		}
	}

	fingerprint := core.ComputeTableHash(out.Result.Headers, out.Result.Rows)

	log.Info().
		Str("key", req.Key).
		Int("matched", out.Result.RowCount()).
		Int("left_only", out.LeftOnly.RowCount()).
		Int("right_only", out.RightOnly.RowCount()).
		Int("duplicates", out.Duplicates.RowCount()).
		Str("fingerprint", fingerprint.String()).
		Msg("compare run finished")

	return &CompareFilesResult{
		RunID:       runID,
		StartedAt:   startedAt,
		Duration:    time.Since(startedAt.Time()),
		OutputPath:  req.OutputPath,
		Matched:     out.Result.RowCount(),
		LeftOnly:    out.LeftOnly.RowCount(),
		RightOnly:   out.RightOnly.RowCount(),
		Duplicates:  out.Duplicates.RowCount(),
		Fingerprint: fingerprint,
		Log:         out.Log,
	}, nil
}

// SplitFile reads the input file, splits it on the key column and writes
// one part file per key value.
func (s *WorkbenchService) SplitFile(ctx context.Context, req SplitFileRequest) (*SplitFileResult, error) {
	runID := core.NewRunID()
	startedAt := core.Now()
	log := s.log.With().Str("run_id", runID.String()).Logger()

	tbl, err := s.reader.ReadTable(ctx, req.Path, req.Sheet)
	if err != nil {
		return nil, errors.IOError("failed to read input table", err)
	}

	out, err := split.Run(split.Input{Table: *tbl, Key: req.Key})
	if err != nil {
		return nil, err
	}

	stem := req.Stem
	if stem == "" {
		stem = fileStem(req.Path)
	}

	paths, err := s.writer.WriteSplit(ctx, req.OutputDir, stem, out)
	if err != nil {
		return nil, errors.IOError("failed to write split parts", err)
	}

	log.Info().
		Str("path", req.Path).
		Str("key", req.Key).
		Int("parts", len(paths)).
		Msg("split run finished")

	return &SplitFileResult{
		RunID:     runID,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt.Time()),
		Paths:     paths,
	}, nil
}

// fileStem returns the base name of path without its extension.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

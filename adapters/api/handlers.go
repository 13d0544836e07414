package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/compare"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/core"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/split"
	"github.com/eightchip/Custom-Merge-Excel-for-web/internal/errors"
)

// handleCompare reconciles two tables from the request body and returns
// the four classified tables plus the run log.
func (s *Server) handleCompare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, core.NewMalformedInputError(err))
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(c, err)
		return
	}

	out, err := compare.Run(req.Input())
	if err != nil {
		s.writeError(c, err)
		return
	}

	runID := core.NewRunID()
	s.log.Info().
		Str("run_id", runID.String()).
		Str("key", *req.Key).
		Int("left_rows", len(*req.LeftRows)).
		Int("right_rows", len(*req.RightRows)).
		Int("matched", out.Result.RowCount()).
		Int("duplicates", out.Duplicates.RowCount()).
		Msg("compare completed")

	c.JSON(http.StatusOK, CompareResponse{RunID: runID, Output: out})
}

// handleSplit partitions one table from the request body into per-key parts.
func (s *Server) handleSplit(c *gin.Context) {
	var req SplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, core.NewMalformedInputError(err))
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(c, err)
		return
	}

	out, err := split.Run(req.Input())
	if err != nil {
		s.writeError(c, err)
		return
	}

	runID := core.NewRunID()
	s.log.Info().
		Str("run_id", runID.String()).
		Str("key", *req.Key).
		Int("rows", len(*req.Rows)).
		Int("parts", len(out.Parts)).
		Msg("split completed")

	c.JSON(http.StatusOK, SplitResponse{RunID: runID, Output: out})
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps domain errors onto HTTP status codes and the error body.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := errors.CodeInternalError

	switch {
	case core.IsMalformedInput(err):
		status = http.StatusBadRequest
		code = errors.CodeMalformedInput
	case core.IsKeyColumnNotFound(err):
		status = http.StatusBadRequest
		code = errors.CodeKeyColumnNotFound
	}

	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	} else {
		s.log.Debug().Err(err).Msg("request rejected")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

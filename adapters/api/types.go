package api

import (
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/compare"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/core"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/split"
	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/table"
)

// CompareRequest carries two in-memory tables and the key column to
// reconcile them on. Table fields are pointers so a missing field can be
// told apart from an empty one.
type CompareRequest struct {
	LeftHeaders  *[]string       `json:"left_headers"`
	LeftRows     *[][]string     `json:"left_rows"`
	RightHeaders *[]string       `json:"right_headers"`
	RightRows    *[][]string     `json:"right_rows"`
	Key          *string         `json:"key"`
	Options      compare.Options `json:"options"`
}

// Validate reports the first required field that is absent.
func (r *CompareRequest) Validate() error {
	switch {
	case r.LeftHeaders == nil:
		return core.NewMalformedFieldError("left_headers")
	case r.LeftRows == nil:
		return core.NewMalformedFieldError("left_rows")
	case r.RightHeaders == nil:
		return core.NewMalformedFieldError("right_headers")
	case r.RightRows == nil:
		return core.NewMalformedFieldError("right_rows")
	case r.Key == nil:
		return core.NewMalformedFieldError("key")
	}
	return nil
}

// Input converts the request into a compare input. Validate first.
func (r *CompareRequest) Input() compare.Input {
	return compare.Input{
		Left:    table.Table{Headers: *r.LeftHeaders, Rows: *r.LeftRows},
		Right:   table.Table{Headers: *r.RightHeaders, Rows: *r.RightRows},
		Key:     *r.Key,
		Options: r.Options,
	}
}

// CompareResponse is the compare output plus the run identifier.
type CompareResponse struct {
	RunID core.RunID `json:"run_id"`
	*compare.Output
}

// SplitRequest carries one in-memory table and the key column to split on.
type SplitRequest struct {
	Headers *[]string   `json:"headers"`
	Rows    *[][]string `json:"rows"`
	Key     *string     `json:"key"`
}

// Validate reports the first required field that is absent.
func (r *SplitRequest) Validate() error {
	switch {
	case r.Headers == nil:
		return core.NewMalformedFieldError("headers")
	case r.Rows == nil:
		return core.NewMalformedFieldError("rows")
	case r.Key == nil:
		return core.NewMalformedFieldError("key")
	}
	return nil
}

// Input converts the request into a split input. Validate first.
func (r *SplitRequest) Input() split.Input {
	return split.Input{
		Table: table.Table{Headers: *r.Headers, Rows: *r.Rows},
		Key:   *r.Key,
	}
}

// SplitResponse is the split output plus the run identifier.
type SplitResponse struct {
	RunID core.RunID `json:"run_id"`
	*split.Output
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/lspmux/ramcp/src/ramcp/entity"
	"go.lsp.dev/jsonrpc2"
)

// RequestToInitializeParams maps the parameters from a jsonrpc2.Request into entity.InitializeParams.
func RequestToInitializeParams(req jsonrpc2.Request) (*entity.InitializeParams, error) {
	params := entity.InitializeParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToCallToolParams maps the parameters from a jsonrpc2.Request into entity.CallToolParams.
func RequestToCallToolParams(req jsonrpc2.Request) (*entity.CallToolParams, error) {
	params := entity.CallToolParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// FileArgs are tool arguments naming a single file.
type FileArgs struct {
	// Absolute path to the Rust source file.
	FilePath string `json:"file_path"`
}

// PositionArgs are tool arguments naming a position within a file.
// Line and character are zero-based, matching LSP positions.
type PositionArgs struct {
	FilePath  string `json:"file_path"`
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// ArgumentsToFileArgs parses tool call arguments into FileArgs.
func ArgumentsToFileArgs(raw json.RawMessage) (*FileArgs, error) {
	args := FileArgs{}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, wrapErrParse(err)
	}
	return &args, nil
}

// ArgumentsToPositionArgs parses tool call arguments into PositionArgs.
func ArgumentsToPositionArgs(raw json.RawMessage) (*PositionArgs, error) {
	args := PositionArgs{}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, wrapErrParse(err)
	}
	return &args, nil
}

func wrapErrParse(err error) error {
	return fmt.Errorf("%s: %w", jsonrpc2.ErrParse, err)
}

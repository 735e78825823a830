package handler

import (
	"fmt"

	"github.com/lspmux/ramcp/src/ramcp/internal/serverinfofile"
	"go.uber.org/config"
)

const (
	_configKeySocket = "analyzer.socket"
	_infoKeySocket   = "analyzer-socket"
)

// Output the analyzer socket path so other tooling can find the shared
// multiplexer a running ramcp instance talks to. The JSON-RPC inbound
// independently adds its transport fields to the Server Info file.
func outputAnalyzerConnectionInfo(cfg config.Provider, infofile serverinfofile.ServerInfoFile) error {
	var socket string
	if err := cfg.Get(_configKeySocket).Populate(&socket); err != nil {
		return fmt.Errorf("loading analyzer config: %w", err)
	}
	if socket == "" {
		return fmt.Errorf("missing field %q in config", _configKeySocket)
	}

	if err := infofile.UpdateField(_infoKeySocket, socket); err != nil {
		return fmt.Errorf("outputting analyzer socket to info file: %w", err)
	}
	return nil
}

// Package mcp exposes the resonance observer over the Model Context
// Protocol.
//
// This implementation uses the MCP SDK (github.com/modelcontextprotocol/go-sdk/mcp)
// and registers the observation tools (record, observe, detect, visualize,
// suggest, listen, reset) plus the guidance prompts that walk a client
// through the observation workflow. All tool calls go straight to the
// observer service; the server itself holds no state beyond metrics.
//
// The server speaks the protocol on stdout, so nothing in this package
// may write to stdout. Logs go through zap, which the daemon points at
// stderr.
package mcp

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aretw0/blinks/pkg/catalog"
	"github.com/aretw0/blinks/pkg/domain"
	"github.com/aretw0/blinks/pkg/schema"
)

// AccountArg is the tool argument carrying the caller's public key.
const AccountArg = "tx_sender_pubkey"

func (s *Server) registerTools() {
	for _, a := range s.catalog.List() {
		tool := newTool(a)
		s.tools[a.Name] = tool
		s.mcpServer.AddTool(tool, mcp.NewStructuredToolHandler(s.handleAction(a.Name)))
	}
}

func newTool(a catalog.Action) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(a.Description),
		mcp.WithOutputSchema[domain.ActionResult](),
	}
	for _, p := range a.Params {
		opts = append(opts, paramOption(p))
	}
	opts = append(opts, mcp.WithString(AccountArg,
		mcp.Required(),
		mcp.Description("Public key of the wallet that will sign the transaction"),
	))
	return mcp.NewTool(a.Name, opts...)
}

func paramOption(p catalog.Param) mcp.ToolOption {
	desc := p.Description
	switch t := p.Type.(type) {
	case *schema.EnumType:
		return mcp.WithString(p.Name, mcp.Required(), mcp.Description(desc), mcp.Enum(t.Values()...))
	case *schema.NumberType:
		props := []mcp.PropertyOption{mcp.Required()}
		if lo, exclusive, ok := t.Min(); ok {
			f, _ := lo.Float64()
			if exclusive {
				desc = fmt.Sprintf("%s (greater than %s)", desc, lo)
			} else {
				props = append(props, mcp.Min(f))
			}
		}
		if hi, ok := t.Max(); ok {
			f, _ := hi.Float64()
			props = append(props, mcp.Max(f))
		}
		props = append(props, mcp.Description(desc))
		return mcp.WithNumber(p.Name, props...)
	default:
		return mcp.WithString(p.Name, mcp.Required(), mcp.Description(desc))
	}
}

// handleAction maps tool arguments onto an ActionRequest. Failures are returned
// in the envelope, not as tool errors.
func (s *Server) handleAction(name string) func(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.ActionResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.ActionResult, error) {
		account, _ := args[AccountArg].(string)

		params := make(map[string]any, len(args))
		for k, v := range args {
			if k != AccountArg {
				params[k] = v
			}
		}

		result := s.invoker.Invoke(ctx, domain.ActionRequest{
			Action:  name,
			Params:  params,
			Account: account,
		})
		if !result.Success {
			s.logger.Debug("MCP tool call failed", "tool", name, "kind", result.Kind, "error", result.Error)
		}
		return result, nil
	}
}

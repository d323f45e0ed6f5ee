package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/tracetm"
	"github.com/aretw0/tracetm/internal/presentation/graph"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	definitionURI = "tracetm://machine"
	graphURI      = "tracetm://graph"
)

// Machine defines what the MCP server needs from a loaded machine.
// *tracetm.Machine satisfies it.
type Machine interface {
	Trace(ctx context.Context, input string, maxDepth int) (*domain.TraceRecord, error)
	Definition() *domain.MachineDefinition
}

// TraceArgs are the arguments of the trace tool.
type TraceArgs struct {
	Input    string `json:"input"`
	MaxDepth int    `json:"max_depth"`
}

// TraceResponse is the structured output of the trace tool.
type TraceResponse struct {
	ID     string        `json:"id" jsonschema_description:"Identifier of the stored trace record"`
	Report domain.Report `json:"report" jsonschema_description:"Verdict, metrics and accepting path of the trace"`
}

// MachineResponse is the structured output of the describe_machine tool.
type MachineResponse struct {
	Definition *domain.MachineDefinition `json:"definition" jsonschema_description:"The loaded machine definition"`
	Mermaid    string                    `json:"mermaid" jsonschema_description:"Mermaid flowchart of the state graph"`
}

// Server wraps a Machine and exposes it as an MCP Server.
type Server struct {
	machine   Machine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(m Machine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		machine:   m,
		logger:    logger,
		mcpServer: server.NewMCPServer("tracetm-mcp", tracetm.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, mostly for tests and embedding.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	traceTool := mcp.NewTool("trace",
		mcp.WithDescription("Explore every computation of the machine on an input string breadth-first and report whether it accepts, rejects, or runs out of depth."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string; each character is one tape symbol. Empty means a single blank.")),
		mcp.WithNumber("max_depth", mcp.Required(), mcp.Description("Maximum number of configuration expansions (positive)")),
		mcp.WithOutputSchema[TraceResponse](),
	)
	s.mcpServer.AddTool(traceTool, mcp.NewStructuredToolHandler(s.handleTrace))

	describeTool := mcp.NewTool("describe_machine",
		mcp.WithDescription("Return the loaded machine definition and its state graph as Mermaid."),
		mcp.WithOutputSchema[MachineResponse](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribe))
}

func (s *Server) handleTrace(ctx context.Context, request mcp.CallToolRequest, args TraceArgs) (TraceResponse, error) {
	clean, err := runner.SanitizeInput(args.Input)
	if err != nil {
		s.logger.Warn("MCP Trace: Input rejected", "err", err, "size", len(args.Input))
		return TraceResponse{}, fmt.Errorf("input rejected: %w", err)
	}
	if args.MaxDepth <= 0 {
		return TraceResponse{}, fmt.Errorf("%w: got %d", domain.ErrInvalidDepth, args.MaxDepth)
	}

	record, err := s.machine.Trace(ctx, clean, args.MaxDepth)
	if err != nil && record == nil {
		return TraceResponse{}, fmt.Errorf("trace failed: %w", err)
	}
	if err != nil {
		s.logger.Error("MCP Trace: report not stored", "err", err)
	}

	return TraceResponse{ID: record.ID, Report: record.Report}, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args struct{}) (MachineResponse, error) {
	def := s.machine.Definition()
	if def == nil {
		return MachineResponse{}, errors.New("no machine loaded")
	}
	return MachineResponse{
		Definition: def,
		Mermaid:    graph.GenerateMermaid(def, nil),
	}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(definitionURI, "Machine Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.machine.Definition())
		if err != nil {
			return nil, fmt.Errorf("failed to encode definition: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      definitionURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource(graphURI, "State Graph (Mermaid)",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      graphURI,
				MIMEType: "text/plain",
				Text:     graph.GenerateMermaid(s.machine.Definition(), nil),
			},
		}, nil
	})
}

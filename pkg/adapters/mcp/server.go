// Package mcp exposes the vending machines as an MCP server, so agent
// hosts can drive sessions through tool calls.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/vendsim"
	"github.com/aretw0/vendsim/internal/machine"
	"github.com/aretw0/vendsim/internal/presentation/graph"
	"github.com/aretw0/vendsim/pkg/domain"
	"github.com/aretw0/vendsim/pkg/session"
)

// StateResponse is the structured result shared by the session tools.
type StateResponse struct {
	SessionID     string          `json:"session_id" jsonschema_description:"The session this state belongs to"`
	Kind          domain.Kind     `json:"kind" jsonschema_description:"Machine kind: single, dual or nfa"`
	Current       []domain.State  `json:"current" jsonschema_description:"Current state set (singleton for DFAs)"`
	Balance       int             `json:"balance" jsonschema_description:"Inserted amount in RM"`
	Accepting     bool            `json:"accepting" jsonschema_description:"Whether any held state is accepting"`
	CanBuyEyeDrop bool            `json:"can_buy_eye_drop" jsonschema_description:"Eye Drop (RM35) affordable"`
	CanBuyVitamin bool            `json:"can_buy_vitamin" jsonschema_description:"Vitamin (RM50) affordable"`
	Dispensed     domain.Product  `json:"dispensed,omitempty" jsonschema_description:"Product dispensed by the last transition, if any"`
	History       []domain.Record `json:"history" jsonschema_description:"Transitions since the last reset"`
}

// Server wraps a session manager and exposes it as an MCP server.
type Server struct {
	sessions  *session.Manager
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(sessions *session.Manager) *Server {
	s := &Server{
		sessions:  sessions,
		mcpServer: server.NewMCPServer("vendsim-mcp", strings.TrimSpace(vendsim.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
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
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	startTool := mcp.NewTool("start_session",
		mcp.WithDescription("Start a vending machine session of the given kind. Returns the initial state."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Caller-chosen session identifier")),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Machine kind: single, dual or nfa")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(startTool, mcp.NewStructuredToolHandler(s.handleStartSession))

	insertTool := mcp.NewTool("insert_symbol",
		mcp.WithDescription("Feed one input symbol (coin or product request) to a session's machine."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Input symbol, e.g. RM5, RM10, RM20, e, v, select_e, dispense_v")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(insertTool, mcp.NewStructuredToolHandler(s.handleInsertSymbol))

	stateTool := mcp.NewTool("get_state",
		mcp.WithDescription("Read a session's current machine state without transitioning."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(stateTool, mcp.NewStructuredToolHandler(s.handleGetState))

	resetTool := mcp.NewTool("reset_session",
		mcp.WithDescription("Return a session's machine to its initial state and clear its history."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(resetTool, mcp.NewStructuredToolHandler(s.handleResetSession))

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get a machine's transition diagram as Mermaid source. Pass a session_id to highlight its visited and current states."),
		mcp.WithString("kind", mcp.Description("Machine kind (required without session_id)")),
		mcp.WithString("session_id", mcp.Description("Session to overlay (optional)")),
	), s.handleGetGraph)
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResponse, error) {
	id, _ := args["session_id"].(string)
	kindStr, _ := args["kind"].(string)

	kind, err := domain.ParseKind(kindStr)
	if err != nil {
		return StateResponse{}, err
	}
	if id == "" {
		return StateResponse{}, fmt.Errorf("session_id is required")
	}

	snap, err := s.sessions.LoadOrStart(ctx, id, kind)
	if err != nil {
		return StateResponse{}, fmt.Errorf("start session: %w", err)
	}
	return s.stateFromSnapshot(id, snap, domain.ProductNone)
}

func (s *Server) handleInsertSymbol(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResponse, error) {
	id, _ := args["session_id"].(string)
	symbol, _ := args["symbol"].(string)
	if symbol == "" {
		return StateResponse{}, fmt.Errorf("symbol is required")
	}

	var resp StateResponse
	err := s.sessions.WithLock(ctx, id, func(ctx context.Context) error {
		snap, err := s.sessions.Store().Load(ctx, id)
		if err != nil {
			return err
		}
		m, err := reconstruct(snap)
		if err != nil {
			return err
		}
		rec := m.Transition(domain.Symbol(symbol))
		resp = stateOf(id, m)
		resp.Dispensed = rec.Dispensed
		return s.sessions.Store().Save(ctx, id, m.Snapshot())
	})
	if err != nil {
		return StateResponse{}, fmt.Errorf("insert symbol: %w", err)
	}
	return resp, nil
}

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResponse, error) {
	id, _ := args["session_id"].(string)
	snap, err := s.sessions.Load(ctx, id)
	if err != nil {
		return StateResponse{}, fmt.Errorf("get state: %w", err)
	}
	return s.stateFromSnapshot(id, snap, domain.ProductNone)
}

func (s *Server) handleResetSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResponse, error) {
	id, _ := args["session_id"].(string)

	var resp StateResponse
	err := s.sessions.WithLock(ctx, id, func(ctx context.Context) error {
		snap, err := s.sessions.Store().Load(ctx, id)
		if err != nil {
			return err
		}
		m, err := reconstruct(snap)
		if err != nil {
			return err
		}
		m.Reset()
		resp = stateOf(id, m)
		return s.sessions.Store().Save(ctx, id, m.Snapshot())
	})
	if err != nil {
		return StateResponse{}, fmt.Errorf("reset session: %w", err)
	}
	return resp, nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, _ := args["session_id"].(string)
	kindStr, _ := args["kind"].(string)

	var overlay *graph.Overlay
	if sessionID != "" {
		snap, err := s.sessions.Load(ctx, sessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load session: %v", err)), nil
		}
		kindStr = string(snap.Kind)
		overlay = graph.OverlayFromSnapshot(snap)
	}

	kind, err := domain.ParseKind(kindStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	def, err := machine.DefinitionFor(kind)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(def, overlay)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: vendsim://machines
	s.mcpServer.AddResource(mcp.NewResource("vendsim://machines", "Machine Definitions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(machine.Definitions())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal definitions: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "vendsim://machines",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func reconstruct(snap domain.Snapshot) (*vendsim.Machine, error) {
	m, err := vendsim.New(snap.Kind)
	if err != nil {
		return nil, err
	}
	if err := m.Restore(snap); err != nil {
		return nil, err
	}
	return m, nil
}

func stateOf(id string, m *vendsim.Machine) StateResponse {
	return StateResponse{
		SessionID:     id,
		Kind:          m.Kind(),
		Current:       m.Current(),
		Balance:       m.Balance(),
		Accepting:     m.IsAccepting(),
		CanBuyEyeDrop: m.CanBuyEyeDrop(),
		CanBuyVitamin: m.CanBuyVitamin(),
		History:       m.History(),
	}
}

func (s *Server) stateFromSnapshot(id string, snap domain.Snapshot, dispensed domain.Product) (StateResponse, error) {
	m, err := reconstruct(snap)
	if err != nil {
		return StateResponse{}, err
	}
	resp := stateOf(id, m)
	resp.Dispensed = dispensed
	return resp, nil
}

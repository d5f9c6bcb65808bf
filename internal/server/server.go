// Package server exposes the canonicalizer and its tools over HTTP.
//
//	POST /tool          execute a tool call
//	POST /canonicalize  canonicalize {"expr": "...", "symbols": [...]}
//	GET  /schema        tool schema for agent registration
//	GET  /health        liveness check
//
// Responses are JSON unless the request accepts application/x-protobuf, in
// which case the same document is sent as a google.protobuf.Struct.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/njchilds90/symcanon"
)

const (
	maxBodyBytes    = 1 << 20 // 1 MiB
	protobufType    = "application/x-protobuf"
	shutdownTimeout = 5 * time.Second
)

type Timeouts struct {
	Read  time.Duration
	Write time.Duration
	Idle  time.Duration
}

type Server struct {
	canon  *symcanon.Canonicalizer
	logger *zap.Logger
	mux    *http.ServeMux
}

func New(canon *symcanon.Canonicalizer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{canon: canon, logger: logger, mux: http.NewServeMux()}
	s.mux.HandleFunc("/tool", s.handleTool)
	s.mux.HandleFunc("/canonicalize", s.handleCanonicalize)
	s.mux.HandleFunc("/schema", s.handleSchema)
	s.mux.HandleFunc("/health", s.handleHealth)
	return s
}

// Handler returns the server's routes wrapped in panic recovery.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic in handler",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		s.logger.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		s.mux.ServeHTTP(w, r)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, t Timeouts) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       t.Read,
		WriteTimeout:      t.Write,
		IdleTimeout:       t.Idle,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down", zap.String("addr", addr))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req symcanon.ToolRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.write(w, r, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}

	resp := s.canon.HandleToolCall(req)
	if resp.Error != "" {
		s.logger.Debug("tool call failed", zap.String("tool", req.Tool), zap.String("error", resp.Error))
	}
	s.write(w, r, http.StatusOK, resp)
}

type canonicalizeRequest struct {
	Expr    string   `json:"expr"`
	Symbols []string `json:"symbols"`
}

func (s *Server) handleCanonicalize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req canonicalizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.write(w, r, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}

	e, err := s.canon.CanonicalizeExpr(req.Expr, req.Symbols)
	if err != nil {
		body := map[string]interface{}{"error": err.Error()}
		var perr *symcanon.ParseError
		if errors.As(err, &perr) {
			body["pos"] = perr.Pos
		}
		s.logger.Debug("canonicalize failed", zap.String("expr", req.Expr), zap.Error(err))
		s.write(w, r, http.StatusBadRequest, body)
		return
	}
	s.write(w, r, http.StatusOK, map[string]interface{}{
		"result": e.String(),
		"latex":  e.LaTeX(),
		"tree":   symcanon.TreeJSON(e),
	})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	var spec map[string]interface{}
	if err := json.Unmarshal([]byte(symcanon.MCPToolSpec()), &spec); err != nil {
		s.logger.Error("encode schema", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	s.write(w, r, http.StatusOK, spec)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// decodeBody reads exactly one JSON document of at most maxBodyBytes.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("invalid JSON: trailing data")
	}
	return nil
}

func wantsProtobuf(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), protobufType)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	if !wantsProtobuf(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(v); err != nil {
			s.logger.Warn("write response", zap.Error(err))
		}
		return
	}

	b, err := encodeProto(v)
	if err != nil {
		s.logger.Error("encode protobuf response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", protobufType)
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		s.logger.Warn("write response", zap.Error(err))
	}
}

// encodeProto converts v to its JSON object form and marshals that as a
// Struct, so both encodings carry the same document.
func encodeProto(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	st, err := structpb.NewStruct(doc)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(st)
}

package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/kartoza/house-price-predictor/internal/api"
	"github.com/kartoza/house-price-predictor/internal/config"
	"github.com/kartoza/house-price-predictor/internal/features"
	"github.com/kartoza/house-price-predictor/internal/history"
	"github.com/kartoza/house-price-predictor/internal/pipeline"
)

//go:embed templates/*
var templateFS embed.FS

// Server holds all the components for the web application
type Server struct {
	cfg        config.Config
	httpServer *http.Server
	router     *mux.Router
	handler    http.Handler
	model      *pipeline.Pipeline
	history    *history.Store
	form       *template.Template
}

// New creates a new Server with the model loaded and routes registered
func New(cfg config.Config) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		router: mux.NewRouter(),
	}

	model, err := loadModel(cfg)
	if err != nil {
		return nil, err
	}
	s.model = model

	// Prediction history is optional
	if cfg.HistoryEnabled() {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			log.Printf("Warning: prediction history not available: %v", err)
		} else {
			s.history = store
			log.Printf("Recording predictions to %s", cfg.HistoryPath)
		}
	}

	form, err := template.New("index.html").Funcs(template.FuncMap{
		"num": formatNumber,
	}).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse form template: %w", err)
	}
	s.form = form

	s.setupRoutes()

	return s, nil
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() {
	s.router.Use(recoverPanics)

	s.router.HandleFunc("/", s.handleIndex).Methods("GET")

	apiHandler := api.NewHandler(s.model, s.history, s.cfg)
	apiHandler.RegisterRoutes(s.router)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	s.handler = handlers.CombinedLoggingHandler(os.Stdout, cors(s.router))
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// formField is one input on the prediction form
type formField struct {
	features.Spec
	Wide bool
}

type formView struct {
	Version string
	Fields  []formField
}

// handleIndex renders the prediction form
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	specs := features.ForModel(s.model.Features)

	view := formView{Version: s.cfg.Version}
	for i, spec := range specs {
		view.Fields = append(view.Fields, formField{
			Spec: spec,
			// an odd trailing field spans both grid columns
			Wide: i == len(specs)-1 && len(specs)%2 == 1,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.form.Execute(w, view); err != nil {
		log.Printf("Error rendering form: %v", err)
	}
}

// Start begins listening for HTTP connections
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server listening on http://localhost:%d", s.cfg.Port)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	if s.history != nil {
		if cerr := s.history.Close(); cerr != nil {
			log.Printf("Error closing prediction history: %v", cerr)
		}
	}

	return err
}

// formatNumber prints a float without trailing zeros for HTML attributes
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

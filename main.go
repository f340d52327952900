package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kartoza/house-price-predictor/internal/config"
	"github.com/kartoza/house-price-predictor/internal/server"
	webview "github.com/webview/webview_go"
)

var version = "dev"

func main() {
	// Environment and .env provide defaults, flags override them
	defaults := config.FromEnv()

	port := flag.Int("port", defaults.Port, "HTTP server port")
	modelPath := flag.String("model", defaults.ModelPath, "Path to the trained model (default <data-dir>/model.gob)")
	dataDir := flag.String("data-dir", defaults.DataDir, "Directory holding the model artifact")
	historyDB := flag.String("history-db", defaults.HistoryPath, "SQLite file for prediction history (empty disables it)")
	bootstrap := flag.Bool("bootstrap", defaults.Bootstrap, "Train a model on synthetic data when none exists")
	headless := flag.Bool("headless", false, "Run in headless mode (no GUI window)")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("House Price Predictor v%s\n", version)
		os.Exit(0)
	}

	// Find an available port (try up to 10 ports starting from the requested one)
	availablePort, err := findAvailablePort(*port, 10)
	if err != nil {
		log.Fatalf("Failed to find available port: %v", err)
	}
	if availablePort != *port {
		log.Printf("Port %d in use, using port %d instead", *port, availablePort)
	}

	cfg := config.Config{
		Port:        availablePort,
		DataDir:     *dataDir,
		ModelPath:   *modelPath,
		HistoryPath: *historyDB,
		Bootstrap:   *bootstrap,
		Version:     version,
	}

	log.Printf("House Price Predictor v%s starting on port %d", version, cfg.Port)
	log.Printf("Model: %s", cfg.ResolvedModelPath())

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Graceful shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", cfg.Port)
	waitForServer(serverURL, 10*time.Second)

	if *headless {
		select {
		case err := <-errCh:
			if err != nil {
				log.Fatalf("Server error: %v", err)
			}
		case sig := <-stop:
			log.Printf("Received %v signal, shutting down...", sig)
			if err := srv.Stop(); err != nil {
				log.Printf("Error during shutdown: %v", err)
			}
		}
		return
	}

	// GUI mode: open the form in an embedded WebView window
	log.Printf("Opening application window...")
	w := webview.New(false)
	defer w.Destroy()

	w.SetTitle("House Price Predictor")
	w.SetSize(900, 860, webview.HintNone)
	w.Navigate(serverURL)

	go func() {
		select {
		case err := <-errCh:
			if err != nil {
				log.Printf("Server error: %v", err)
			}
		case sig := <-stop:
			log.Printf("Received %v signal, shutting down...", sig)
		}
		w.Terminate()
	}()

	// Run blocks until the window is closed
	w.Run()

	log.Printf("Window closed, shutting down server...")
	if err := srv.Stop(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

// waitForServer polls until the server is accepting connections
func waitForServer(url string, timeout time.Duration) {
	addr := url[len("http://"):]
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	log.Printf("Warning: server may not be ready at %s", url)
}

// findAvailablePort returns startPort or the next free port after it.
func findAvailablePort(startPort int, maxAttempts int) (int, error) {
	for i := 0; i < maxAttempts; i++ {
		port := startPort + i
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port found after %d attempts starting from %d", maxAttempts, startPort)
}

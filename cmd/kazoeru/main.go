// Package main is the Kazoeru CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hyperjump/kazoeru/internal/analyze"
	"github.com/hyperjump/kazoeru/internal/cli"
	"github.com/hyperjump/kazoeru/internal/config"
	"github.com/hyperjump/kazoeru/internal/extract"
	"github.com/hyperjump/kazoeru/internal/models"
	"github.com/hyperjump/kazoeru/internal/server"
	"github.com/hyperjump/kazoeru/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kazoeru/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. A missing default file falls back to built-in defaults so the
// server runs without any config at all.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				return config.Load(fallback)
			}
		}
		if _, err := os.Stat(path); err != nil {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "analyze":
		runAnalyze()
	case "version", "--version", "-v":
		fmt.Printf("kazoeru version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print results as JSON")
	serverURL := fs.String("server", "", "analyze via a running kazoeru server instead of locally")
	_ = fs.Parse(os.Args[2:])

	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: kazoeru analyze [flags] <file>...\n")
		fs.PrintDefaults()
		os.Exit(1)
	}

	format := cli.OutputText
	if *asJSON {
		format = cli.OutputJSON
	}
	exitCode := 0
	for _, path := range files {
		var result *models.AnalysisResult
		var err error
		if *serverURL != "" {
			result, err = analyzeRemote(*serverURL, path)
		} else {
			result, err = analyzeLocal(path)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
			continue
		}
		if err := cli.WriteResult(os.Stdout, result, format); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

// analyzeLocal runs the extraction and analysis pipeline in-process.
func analyzeLocal(path string) (*models.AnalysisResult, error) {
	text, err := extract.NewExtractor().Extract(path)
	if err != nil {
		return nil, err
	}
	stats := analyze.Analyze(text)
	return &models.AnalysisResult{
		Filename:        filepath.Base(path),
		WordCount:       stats.WordCount,
		CharacterCount:  stats.CharacterCount,
		WhitespaceCount: stats.WhitespaceCount,
		LineCount:       stats.LineCount,
	}, nil
}

// analyzeRemote posts the file to a running server's JSON API.
func analyzeRemote(baseURL, path string) (*models.AnalysisResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := http.Post(baseURL+"/api/v1/analyze", mw.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("server: %s", apiErr.Error)
		}
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	var result models.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

func printUsage() {
	fmt.Print(`kazoeru — document statistics

Usage:
  kazoeru server [-config path] [-debug]     start the web UI and API
  kazoeru analyze [-json] [-server URL] <file>...
                                             count words, characters, whitespace,
                                             and lines in local documents
  kazoeru version                            print version
  kazoeru help                               show this help

Supported document formats: txt, csv, rtf, docx, doc.
`)
}

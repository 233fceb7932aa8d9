package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/hexview/pkg/config"
	"github.com/Dicklesworthstone/hexview/pkg/content"
	"github.com/Dicklesworthstone/hexview/pkg/export"
	"github.com/Dicklesworthstone/hexview/pkg/ui"
	"github.com/Dicklesworthstone/hexview/pkg/watcher"
)

const appVersion = "0.1.0"

func main() {
	help := flag.Bool("help", false, "Show help")
	version := flag.Bool("version", false, "Show version")
	dir := flag.String("dir", "", "Directory of markdown documents (default: current directory)")
	rows := flag.Int("rows", 0, "Number of honeycomb rows (overrides config)")
	configPath := flag.String("config", "", "Config file (default: <dir>/"+config.DefaultPath+")")
	snapshot := flag.String("snapshot", "", "Write the honeycomb to these .png/.svg files (comma separated) and exit")
	width := flag.Int("width", 0, "Terminal columns for layout (default: detected)")
	height := flag.Int("height", 0, "Terminal rows for layout (default: detected)")
	flag.Parse()

	if *help {
		fmt.Println("Usage: hv [options]")
		fmt.Println("\nA honeycomb viewer for a directory of markdown documents.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("hv version %s\n", appVersion)
		os.Exit(0)
	}

	if os.Getenv("HV_DEBUG") != "" {
		f, err := tea.LogToFile("hv-debug.log", "hv")
		if err != nil {
			fmt.Printf("Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	contentDir := *dir
	if contentDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Printf("Error getting working directory: %v\n", err)
			os.Exit(1)
		}
		contentDir = wd
	}
	if *configPath == "" {
		*configPath = config.PathIn(contentDir)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *rows > 0 {
		cfg.Rows = *rows
	}
	if *snapshot != "" {
		cfg.Snapshot = *snapshot
	}

	docs, err := content.LoadDir(contentDir, cfg.MaxPanels)
	if err != nil {
		fmt.Printf("Error loading documents: %v\n", err)
		fmt.Println("Point -dir at a directory containing .md files.")
		os.Exit(1)
	}

	// Layout is computed once from the size at startup.
	cols, lines := *width, *height
	if cols <= 0 || lines <= 0 {
		w, h, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			w, h = 120, 40
		}
		if cols <= 0 {
			cols = w
		}
		if lines <= 0 {
			lines = h
		}
	}

	m, err := ui.NewModel(docs, ui.Options{Config: cfg, Width: cols, Height: lines})
	if err != nil {
		fmt.Printf("Error building layout: %v\n", err)
		fmt.Printf("%d documents in %d rows; try a smaller -rows.\n", len(docs), cfg.Rows)
		os.Exit(1)
	}

	if cfg.Snapshot != "" {
		if err := writeSnapshots(m, cfg.Snapshot, filepath.Base(contentDir)); err != nil {
			fmt.Printf("Error writing snapshot: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	w, err := content.Watch(docs, watcher.DefaultDebounceDuration, func(i int) {
		p.Send(ui.DocumentChangedMsg{Index: i})
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: live reload disabled: %v\n", err)
	} else {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		defer w.Close()
		go w.Run(ctx)
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running hexview: %v\n", err)
		os.Exit(1)
	}
}

func writeSnapshots(m ui.Model, list, title string) error {
	var paths []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	mgr := m.Manager()
	err := export.SaveGridSnapshots(paths, export.GridSnapshotOptions{
		Panels:      mgr.Panels(),
		ContentSize: mgr.Config().ContentSize(),
		Focused:     mgr.Focused(),
		Title:       title,
	})
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("Snapshot written to %s\n", p)
	}
	return nil
}

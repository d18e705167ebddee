package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"nodegraph/internal/config"
	"nodegraph/internal/scene"
)

var configPath string

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "nodegraph",
		Short:        "Terminal node-graph editor",
		Long:         "nodegraph edits graphs of nodes, sockets, plugs and curved connections in the terminal.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.Path()+")")
	cmd.AddCommand(exportCmd())
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		name  string
		scale float64
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the demo graph as a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if scale > 0 {
				cfg.Export.Scale = scale
			}
			logger := cfg.NewLogger(cmd.ErrOrStderr())
			g := scene.New(scene.WithLogger(logger), scene.WithNodeStyle(cfg.Node))
			if err := buildDemo(g, cfg.Port); err != nil {
				return fmt.Errorf("demo graph: %w", err)
			}
			path, err := exportGraph(g, cfg, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "nodegraph", "output file name without extension")
	cmd.Flags().Float64Var(&scale, "scale", 0, "pixels per scene unit (default from config)")
	return cmd
}

func runTUI() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger, closeLog := openLog(cfg)
	defer closeLog()

	m, err := initialModel(cfg, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	w, err := watchConfig(p, configPath, logger)
	if err != nil {
		logger.Warn("config watch disabled", slog.String("error", err.Error()))
	} else {
		defer w.Close()
	}

	logger.Info("nodegraph started")
	_, err = p.Run()
	return err
}

func initialModel(cfg *config.Config, logger *slog.Logger) (model, error) {
	m := model{
		mode:           ModeNormal,
		helpModel:      help.New(),
		keys:           keys,
		term:           newTerminal(cfg),
		config:         cfg,
		logger:         logger,
		selectedPort:   scene.NoPort,
		connectionFrom: scene.NoPort,
	}
	g := m.newGraph()
	if cfg.Editor.Demo {
		if err := buildDemo(g, cfg.Port); err != nil {
			return model{}, fmt.Errorf("demo graph: %w", err)
		}
	}
	m.addNewBuffer(g)
	return m, nil
}

package initializer

import (
	"log/slog"
	"os"

	"github.com/abaasith/unibank/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var levelColors = map[log.Level]string{
	log.DebugLevel: "#7E57C2",
	log.InfoLevel:  "#04B575",
	log.WarnLevel:  "#EE6FF8",
	log.ErrorLevel: "#FF6B6B",
}

func setupLogger(cfg config.Log) *slog.Logger {
	styles := log.DefaultStyles()
	for level, hex := range levelColors {
		color := lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		styles.Levels[level] = styles.Levels[level].
			Bold(true).
			Padding(0, 1).
			Foreground(color)
	}

	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles)

	slogger := slog.New(logger)
	slog.SetDefault(slogger)

	return slogger
}

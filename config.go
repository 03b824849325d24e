package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	SaveDirectory string
	Confirmations bool
	LogFile       string
	HistoryFile   string

	Nudge, BigNudge       float64
	CellWidth, CellHeight float64
}

func defaultConfig(homeDir string) *Config {
	config := &Config{
		Confirmations: true,
		Nudge:         8,
		BigNudge:      40,
		CellWidth:     8,
		CellHeight:    16,
	}
	if homeDir != "" {
		config.HistoryFile = filepath.Join(homeDir, ".uicanvas_history")
	}
	return config
}

func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig("")
	}
	file, err := os.Open(filepath.Join(homeDir, ".uicanvasrc"))
	if err != nil {
		return defaultConfig(homeDir)
	}
	defer file.Close()
	return parseConfig(bufio.NewScanner(file), homeDir)
}

func parseConfig(scanner *bufio.Scanner, homeDir string) *Config {
	config := defaultConfig(homeDir)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "logfile", "log_file", "log":
			config.LogFile = expandPath(value, homeDir)
		case "historyfile", "history_file", "history":
			config.HistoryFile = expandPath(value, homeDir)
		case "nudge":
			setPositive(&config.Nudge, value)
		case "bignudge", "big_nudge":
			setPositive(&config.BigNudge, value)
		case "cellwidth", "cell_width":
			setPositive(&config.CellWidth, value)
		case "cellheight", "cell_height":
			setPositive(&config.CellHeight, value)
		}
	}
	return config
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// setPositive keeps the default for unparsable or non-positive values.
func setPositive(dst *float64, value string) {
	if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 {
		*dst = v
	}
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

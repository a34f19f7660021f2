package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tidinho/dash-leishmaniose/internal/aggregate"
	"github.com/tidinho/dash-leishmaniose/internal/config"
	"github.com/tidinho/dash-leishmaniose/internal/exporter"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Write the filtered dashboard views to an xlsx workbook",
	Example: `  leishdash export --uf MA --ano 2019 --ano 2020 -o maranhao.xlsx`,
	RunE:    runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	snap, res, err := loadFiltered(cmd.Context())
	if err != nil {
		return err
	}

	now := time.Now()
	path := exportOut
	if path == "" {
		if _, err := config.EnsureDataDir(cfg); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}
		path = config.GetDataPath(cfg, "exports", fmt.Sprintf("leishmaniose-%s.xlsx", now.Format("20060102-150405")))
	}

	d := aggregate.Build(res.Records, cfg.ViewOptions())
	err = exporter.SaveDashboard(path, d, exporter.Meta{
		SnapshotID:  snap.ID,
		SnapshotAt:  snap.LoadedAt,
		GeneratedAt: now,
		Selection:   selection,
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	abs, _ := filepath.Abs(path)
	logger.Info("export written", zap.String("path", abs), zap.Int("rows", len(res.Records)))
	fmt.Fprintf(cmd.OutOrStdout(), "Exportado: %s\n", abs)
	return nil
}

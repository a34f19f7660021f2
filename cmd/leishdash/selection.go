package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tidinho/dash-leishmaniose/internal/dataset"
	"github.com/tidinho/dash-leishmaniose/internal/filter"
)

var selection filter.Selection

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&selection.States, "uf", nil, "State codes (repeatable)")
	cmd.Flags().StringSliceVar(&selection.Municipalities, "municipio", nil, "Municipality names (repeatable)")
	cmd.Flags().StringArrayVar(&selection.Facilities, "unidade", nil, "Notifying facility names (repeatable)")
	cmd.Flags().IntSliceVar(&selection.Years, "ano", nil, "Notification years (repeatable)")
}

// loadFiltered reads the snapshot once and applies the selection.
func loadFiltered(ctx context.Context) (*dataset.Snapshot, filter.Result, error) {
	data := dataset.NewStore(cfg.Data.SnapshotPath, dataset.WithLogger(logger.Named("dataset")))
	snap, err := data.Get(ctx)
	if err != nil {
		return nil, filter.Result{}, err
	}
	res := filter.Apply(snap.Records, selection)
	logger.Debug("selection applied",
		zap.Any("selection", selection),
		zap.Int("rows", len(res.Records)),
		zap.Int("total", snap.Len()),
	)
	if len(res.Records) == 0 && !selection.IsEmpty() {
		logger.Warn("no rows match the selection", zap.String("snapshot", snap.Path))
	}
	return snap, res, nil
}

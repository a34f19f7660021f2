package server

import (
	"go.uber.org/zap"

	"github.com/tidinho/dash-leishmaniose/internal/dataset"
	"github.com/tidinho/dash-leishmaniose/internal/store"
)

// loadRecorder writes every snapshot load attempt to the load_logs table.
type loadRecorder struct {
	store  *store.Store
	logger *zap.Logger
}

func newLoadRecorder(st *store.Store, logger *zap.Logger) *loadRecorder {
	return &loadRecorder{store: st, logger: logger}
}

func (r *loadRecorder) LoadStarted(id, path string) {
	size, hash, err := store.FileFingerprint(path)
	if err != nil {
		r.logger.Debug("fingerprint unavailable", zap.String("path", path), zap.Error(err))
	}
	if err := r.store.CreateLoadLog(id, path, size, hash); err != nil {
		r.logger.Warn("failed to create load log", zap.String("id", id), zap.Error(err))
	}
}

func (r *loadRecorder) LoadFinished(id string, snap *dataset.Snapshot, err error) {
	status, msg, format, rows := store.LoadStatusOK, "", "", 0
	if err != nil {
		status, msg = store.LoadStatusFailed, err.Error()
	}
	if snap != nil {
		format, rows = string(snap.Format), snap.Len()
	}
	if ferr := r.store.FinishLoadLog(id, format, rows, status, msg); ferr != nil {
		r.logger.Warn("failed to finish load log", zap.String("id", id), zap.Error(ferr))
	}
}

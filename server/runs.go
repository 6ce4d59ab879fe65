package server

import (
	"context"
	"time"

	"github.com/skillsenselab/meetscribe/logger"
	"github.com/skillsenselab/meetscribe/store"
)

// runTimeout bounds a single pipeline run end to end.
const runTimeout = 45 * time.Minute

// executeRun drives one recording through the pipeline in the background and
// persists the outcome. The HTTP request that triggered it has already
// returned 202.
func (h *Handlers) executeRun(rec *store.Recording) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	log := h.log.WithFields(logger.Fields("recording_id", rec.ID))

	if err := h.recordings.SetStatus(ctx, rec.ID, store.StatusRunning, ""); err != nil {
		log.WithError(err).Error("marking recording running")
		return
	}

	result, err := h.orch.Run(ctx, rec.AudioPath)
	if err != nil {
		log.WithError(err).Error("pipeline run failed")
		if serr := h.recordings.SetStatus(ctx, rec.ID, store.StatusFailed, err.Error()); serr != nil {
			log.WithError(serr).Error("marking recording failed")
		}
		return
	}

	rec.Status = store.StatusDone
	if result.Degraded {
		rec.Status = store.StatusDegraded
	}
	rec.Error = ""
	rec.Duration = result.Duration
	rec.NumSpeakers = result.NumSpeakers
	rec.RawTranscript = result.RawTranscript
	rec.CleanedText = result.CleanedText
	rec.FullReport = result.FullReport
	rec.ShortSummary = result.ShortSummary

	rec.Speakers = rec.Speakers[:0]
	for _, sp := range result.Speakers {
		rec.Speakers = append(rec.Speakers, store.SpeakerSummary{
			RecordingID: rec.ID,
			Label:       sp.Label,
			Summary:     sp.Summary,
			Fallback:    sp.Fallback,
		})
	}
	rec.Documents = rec.Documents[:0]
	for format, path := range result.Documents {
		rec.Documents = append(rec.Documents, store.Document{
			RecordingID: rec.ID,
			Format:      string(format),
			Path:        path,
		})
	}

	if err := h.recordings.SaveResult(ctx, rec); err != nil {
		log.WithError(err).Error("persisting run result")
		return
	}
	log.Info("recording processed", logger.Fields("status", rec.Status))
}

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/meetscribe/diarization"
	apperrors "github.com/skillsenselab/meetscribe/errors"
	"github.com/skillsenselab/meetscribe/export"
	"github.com/skillsenselab/meetscribe/logger"
	"github.com/skillsenselab/meetscribe/media"
	"github.com/skillsenselab/meetscribe/observability"
	"github.com/skillsenselab/meetscribe/resilience"
	"github.com/skillsenselab/meetscribe/storage"
	"github.com/skillsenselab/meetscribe/summarize"
	"github.com/skillsenselab/meetscribe/textclean"
	"github.com/skillsenselab/meetscribe/transcript"
	"github.com/skillsenselab/meetscribe/transcription"
)

// Stage names used in spans, metrics, and error details.
const (
	StageConvert    = "convert"
	StageDiarize    = "diarization"
	StageTranscribe = "transcription"
	StageAlign      = "align"
	StageMerge      = "merge"
	StageExtract    = "extract"
	StageClean      = "clean"
	StageSummarize  = "summarize"
	StageReport     = "report"
	StageExport     = "export"
)

// Collaborators groups the external services a run depends on.
// Diarizer, Transcriber, and Exporter are required; the rest are optional
// and their stages degrade or are skipped when absent.
type Collaborators struct {
	Diarizer    diarization.Provider
	Transcriber transcription.Provider
	Summarizer  summarize.Provider
	Reporter    summarize.ReportProvider
	Converter   *media.Converter
	Exporter    *export.Exporter
	Artifacts   *storage.Store
}

// Orchestrator executes pipeline runs. Safe for concurrent use.
type Orchestrator struct {
	cfg     Config
	collab  Collaborators
	cleaner *textclean.Cleaner
	aligner *transcript.Aligner
	retry   resilience.RetryConfig
	log     *logger.Logger
	metrics *observability.RunMetrics
}

// New creates an orchestrator. The config is defaulted in place.
func New(cfg Config, collab Collaborators, log *logger.Logger) (*Orchestrator, error) {
	cfg.ApplyDefaults()
	if collab.Diarizer == nil {
		return nil, fmt.Errorf("diarization provider is required")
	}
	if collab.Transcriber == nil {
		return nil, fmt.Errorf("transcription provider is required")
	}
	if collab.Exporter == nil {
		return nil, fmt.Errorf("exporter is required")
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Orchestrator{
		cfg:     cfg,
		collab:  collab,
		cleaner: textclean.NewCleaner(),
		aligner: &transcript.Aligner{
			OverlapThreshold: cfg.OverlapThreshold,
			ContinuityBonus:  cfg.ContinuityBonus,
		},
		retry: resilience.DefaultRetryConfig(),
		log:   log.WithComponent("pipeline"),
	}, nil
}

// SetMetrics attaches run metrics. A nil receiver on the metrics side is
// tolerated, so this is optional.
func (o *Orchestrator) SetMetrics(m *observability.RunMetrics) { o.metrics = m }

// Run processes one audio file end to end and returns the aggregate result.
// Diarization, transcription, and export failures abort the run;
// summarization failures degrade to truncated fallbacks.
func (o *Orchestrator) Run(ctx context.Context, audioPath string) (*Result, error) {
	started := time.Now()

	if strings.TrimSpace(audioPath) == "" {
		return nil, apperrors.InvalidAudio("empty audio path")
	}
	if _, err := os.Stat(audioPath); err != nil {
		return nil, apperrors.InvalidAudio(fmt.Sprintf("cannot read %s", audioPath)).WithCause(err)
	}

	runID := uuid.NewString()
	log := o.log.WithFields(logger.Fields(logger.FieldRunID, runID, "audio", audioPath))

	ctx, span := observability.StartSpan(ctx, "pipeline.run")
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrRunID, runID)
	observability.SetSpanAttribute(ctx, observability.AttrAudioPath, audioPath)

	status := "error"
	o.metrics.RecordRunStart(ctx)
	defer func() {
		o.metrics.RecordRunEnd(ctx, status, time.Since(started))
	}()

	log.Info("run started")

	res := &Result{
		RunID:     runID,
		AudioPath: audioPath,
		Documents: map[export.Format]string{},
	}

	wavPath := audioPath
	if o.collab.Converter != nil {
		err := o.stage(ctx, StageConvert, func(ctx context.Context) error {
			p, err := o.collab.Converter.ToWAV(ctx, audioPath)
			if err != nil {
				return err
			}
			wavPath = p
			return nil
		})
		if err != nil {
			return nil, apperrors.CollaboratorFailed(StageConvert, err)
		}
		if wavPath != audioPath {
			defer os.Remove(wavPath)
		}
	}

	diar, trans, err := o.recognize(ctx, wavPath)
	if err != nil {
		log.WithError(err).Error("run aborted")
		return nil, err
	}
	res.Duration = trans.Duration
	res.NumSpeakers = diar.NumSpeakers
	observability.SetSpanAttribute(ctx, observability.AttrNumSpeakers, diar.NumSpeakers)

	var lines []string
	_ = o.stage(ctx, StageAlign, func(ctx context.Context) error {
		lines = o.aligner.AlignStrings(diar.Intervals, trans.Segments)
		return nil
	})
	res.RawTranscript = strings.Join(lines, "\n")

	if !o.cfg.SkipMerge {
		_ = o.stage(ctx, StageMerge, func(ctx context.Context) error {
			lines = transcript.Merge(lines)
			return nil
		})
	}
	merged := strings.Join(lines, "\n")

	var bySpeaker *transcript.SpeakerTranscript
	_ = o.stage(ctx, StageExtract, func(ctx context.Context) error {
		res.PlainText = transcript.ExtractPlainText(merged)
		bySpeaker = transcript.ExtractBySpeaker(merged)
		return nil
	})
	if res.NumSpeakers == 0 {
		res.NumSpeakers = bySpeaker.Len()
	}

	_ = o.stage(ctx, StageClean, func(ctx context.Context) error {
		res.CleanedText = o.cleaner.CleanAdvanced(res.PlainText)
		return nil
	})

	_ = o.stage(ctx, StageSummarize, func(ctx context.Context) error {
		o.summarizeSpeakers(ctx, log, bySpeaker, res)
		return nil
	})

	_ = o.stage(ctx, StageReport, func(ctx context.Context) error {
		o.buildReport(ctx, log, res)
		return nil
	})

	o.saveIntermediates(runID, log, res)

	err = o.stage(ctx, StageExport, func(ctx context.Context) error {
		docs, err := o.collab.Exporter.Export(documentBaseName(audioPath, runID), o.assembleSections(res))
		if err != nil {
			return err
		}
		res.Documents = docs
		return nil
	})
	if err != nil {
		log.WithError(err).Error("run aborted")
		return nil, apperrors.CollaboratorFailed(StageExport, err)
	}

	status = "ok"
	if res.Degraded {
		status = "degraded"
	}
	log.Info("run finished", logger.Fields(
		"status", status,
		"speakers", res.NumSpeakers,
		"duration_s", time.Since(started).Seconds(),
	))
	return res, nil
}

// recognize runs diarization and transcription concurrently. Both must
// succeed; diarization errors take precedence when both fail.
func (o *Orchestrator) recognize(ctx context.Context, wavPath string) (*diarization.Response, *transcription.Response, error) {
	var (
		wg      sync.WaitGroup
		diar    *diarization.Response
		trans   *transcription.Response
		diarErr error
		tranErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		diarErr = o.stage(ctx, StageDiarize, func(ctx context.Context) error {
			resp, err := o.collab.Diarizer.Diarize(ctx, diarization.Request{
				AudioPath: wavPath,
				Language:  o.cfg.Language,
			})
			if err != nil {
				return err
			}
			diar = resp
			return nil
		})
	}()

	tranErr = o.stage(ctx, StageTranscribe, func(ctx context.Context) error {
		resp, err := o.collab.Transcriber.Transcribe(ctx, transcription.Request{
			AudioPath: wavPath,
			Language:  o.cfg.Language,
		})
		if err != nil {
			return err
		}
		trans = resp
		return nil
	})
	wg.Wait()

	if diarErr != nil {
		return nil, nil, apperrors.CollaboratorFailed(StageDiarize, diarErr)
	}
	if tranErr != nil {
		return nil, nil, apperrors.CollaboratorFailed(StageTranscribe, tranErr)
	}
	return diar, trans, nil
}

// summarizeSpeakers fills res.Speakers, falling back to truncation per
// speaker when the summarizer is absent or keeps failing.
func (o *Orchestrator) summarizeSpeakers(ctx context.Context, log *logger.Logger, bySpeaker *transcript.SpeakerTranscript, res *Result) {
	for _, label := range bySpeaker.Speakers() {
		text := bySpeaker.Text(label)
		summary, fallback := o.summarizeOne(ctx, log, label, text)
		if fallback {
			res.Degraded = true
		}
		res.Speakers = append(res.Speakers, SpeakerResult{
			Label:    label,
			Text:     text,
			Summary:  summary,
			Fallback: fallback,
		})
	}
}

func (o *Orchestrator) summarizeOne(ctx context.Context, log *logger.Logger, label, text string) (string, bool) {
	if o.collab.Summarizer == nil {
		return summarize.Truncate(text, o.cfg.SpeakerFallbackLength), true
	}
	sum, err := resilience.Retry(ctx, o.retry, func() (*summarize.Summary, error) {
		return o.collab.Summarizer.Summarize(ctx, summarize.Request{
			Text:      text,
			MaxLength: o.cfg.SpeakerSummaryMaxLength,
			MinLength: o.cfg.SpeakerSummaryMinLength,
		})
	})
	if err != nil {
		degraded := apperrors.SummarizationDegraded("speaker "+label, err)
		log.WithError(degraded).Warn("speaker summary degraded", logger.Fields("speaker", label))
		o.metrics.RecordFallback(ctx, "speaker")
		return summarize.Truncate(text, o.cfg.SpeakerFallbackLength), true
	}
	return sum.Text, false
}

// buildReport fills FullReport and ShortSummary. The report provider is
// tried first, then the plain summarizer over the cleaned text, then
// truncation.
func (o *Orchestrator) buildReport(ctx context.Context, log *logger.Logger, res *Result) {
	if o.collab.Reporter != nil {
		req := summarize.ReportRequest{CleanedText: res.CleanedText}
		for _, sp := range res.Speakers {
			req.Speakers = append(req.Speakers, summarize.SpeakerSummary{
				Label:   sp.Label,
				Summary: sp.Summary,
			})
		}
		report, err := resilience.Retry(ctx, o.retry, func() (*summarize.Report, error) {
			return o.collab.Reporter.GenerateReport(ctx, req)
		})
		if err == nil {
			res.FullReport = report.FullReport
			res.ShortSummary = report.ShortSummary
			return
		}
		degraded := apperrors.SummarizationDegraded("report", err)
		log.WithError(degraded).Warn("report generation degraded")
	}

	res.Degraded = true
	o.metrics.RecordFallback(ctx, "report")

	if o.collab.Summarizer != nil {
		sum, err := o.collab.Summarizer.Summarize(ctx, summarize.Request{Text: res.CleanedText})
		if err == nil {
			res.FullReport = sum.Text
			res.ShortSummary = summarize.Truncate(sum.Text, o.cfg.SpeakerFallbackLength)
			return
		}
	}
	res.FullReport = summarize.Truncate(res.CleanedText, o.cfg.ReportFallbackLength)
	res.ShortSummary = summarize.Truncate(res.CleanedText, o.cfg.SpeakerFallbackLength)
}

// saveIntermediates persists per-stage artifacts when enabled. Failures are
// logged and never abort the run.
func (o *Orchestrator) saveIntermediates(runID string, log *logger.Logger, res *Result) {
	if !o.cfg.SaveIntermediates || o.collab.Artifacts == nil {
		return
	}
	artifacts := map[string]string{
		runID + "/transcript_brut.txt": res.RawTranscript,
		runID + "/texte_brut.txt":      res.PlainText,
		runID + "/texte_nettoye.txt":   res.CleanedText,
		runID + "/compte_rendu.txt":    res.FullReport,
	}
	for key, body := range artifacts {
		if err := o.collab.Artifacts.Put(key, []byte(body)); err != nil {
			log.WithError(err).Warn("artifact save failed", logger.Fields("key", key))
		}
	}
}

// assembleSections builds the document in reading order.
func (o *Orchestrator) assembleSections(res *Result) []export.Section {
	var speakerBlocks []string
	for _, sp := range res.Speakers {
		speakerBlocks = append(speakerBlocks, sp.Label+" :\n"+sp.Summary)
	}
	return []export.Section{
		{Title: "Résumé court", Body: res.ShortSummary},
		{Title: "Compte rendu", Body: res.FullReport},
		{Title: "Résumés par intervenant", Body: strings.Join(speakerBlocks, "\n\n")},
		{Title: "Transcription nettoyée", Body: res.CleanedText},
		{Title: "Transcription horodatée", Body: res.RawTranscript},
	}
}

// stage wraps one pipeline stage with a span and duration metric.
func (o *Orchestrator) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := observability.StartSpan(ctx, "pipeline."+name)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrStage, name)

	start := time.Now()
	err := fn(ctx)
	o.metrics.RecordStage(ctx, name, err, time.Since(start))
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return err
}

func documentBaseName(audioPath, runID string) string {
	base := filepath.Base(audioPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("compte_rendu_%s_%s", base, short)
}

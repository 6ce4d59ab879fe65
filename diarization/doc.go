// Package diarization defines the diarization collaborator interface and
// common types for partitioning an audio timeline into speaker-attributed
// intervals.
//
// Speaker labels are opaque strings with no stability guarantee across runs,
// and backends are not required to return intervals in chronological order;
// consumers must tolerate both.
//
// # Backends
//
//   - diarization/pyannote: pyannote.audio HTTP sidecar
//
// # Usage
//
//	reg := diarization.NewRegistry()
//	reg.RegisterFactory(pyannote.ProviderName, pyannote.Factory())
//	p, err := reg.Create(pyannote.ProviderName, cfg)
//	resp, err := p.Diarize(ctx, req)
package diarization

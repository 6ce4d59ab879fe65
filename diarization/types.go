package diarization

// Request holds parameters for a diarization call. The audio at AudioPath
// must already be mono 16 kHz PCM WAV; format conversion is the media
// package's responsibility.
type Request struct {
	// AudioPath is the path to the audio file to diarize.
	AudioPath string `json:"audio_path"`
	// NumSpeakers is the exact number of speakers (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty"`
	// MinSpeakers is the minimum expected number of speakers.
	MinSpeakers int `json:"min_speakers,omitempty"`
	// MaxSpeakers is the maximum expected number of speakers.
	MaxSpeakers int `json:"max_speakers,omitempty"`
	// Language is the expected language of the audio (e.g. "fr").
	Language string `json:"language,omitempty"`
}

// Response holds the result of a diarization call.
type Response struct {
	// Intervals contains speaker-attributed time intervals. Ordering by
	// start time is not guaranteed.
	Intervals []Interval `json:"intervals"`
	// NumSpeakers is the number of speakers detected.
	NumSpeakers int `json:"num_speakers"`
}

// Interval is one speaker-attributed time range. End >= Start always holds
// for intervals produced by a backend.
type Interval struct {
	// Start is the interval start time in seconds.
	Start float64 `json:"start"`
	// End is the interval end time in seconds.
	End float64 `json:"end"`
	// Speaker is the opaque speaker label.
	Speaker string `json:"speaker"`
}

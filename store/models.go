package store

import "time"

// Recording statuses.
const (
	StatusPending  = "pending"
	StatusRunning  = "running"
	StatusDone     = "done"
	StatusDegraded = "degraded"
	StatusFailed   = "failed"
)

// User is an account that owns recordings.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Recording is one uploaded meeting and everything its run produced.
type Recording struct {
	ID            string  `gorm:"primaryKey;size:36" json:"id"`
	UserID        uint    `gorm:"index;not null" json:"user_id"`
	Filename      string  `gorm:"size:255;not null" json:"filename"`
	AudioPath     string  `gorm:"size:512" json:"-"`
	Status        string  `gorm:"size:16;index;not null" json:"status"`
	Error         string  `gorm:"type:text" json:"error,omitempty"`
	Duration      float64 `json:"duration"`
	NumSpeakers   int     `json:"num_speakers"`
	RawTranscript string  `gorm:"type:text" json:"raw_transcript,omitempty"`
	CleanedText   string  `gorm:"type:text" json:"cleaned_text,omitempty"`
	FullReport    string  `gorm:"type:text" json:"full_report,omitempty"`
	ShortSummary  string  `gorm:"type:text" json:"short_summary,omitempty"`

	Speakers  []SpeakerSummary `gorm:"foreignKey:RecordingID" json:"speakers,omitempty"`
	Documents []Document       `gorm:"foreignKey:RecordingID" json:"documents,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SpeakerSummary is one speaker's summary within a recording.
type SpeakerSummary struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	RecordingID string `gorm:"index;size:36;not null" json:"-"`
	Label       string `gorm:"size:64;not null" json:"label"`
	Summary     string `gorm:"type:text" json:"summary"`
	Fallback    bool   `json:"fallback"`
}

// Document is one exported file produced for a recording.
type Document struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	RecordingID string `gorm:"index;size:36;not null" json:"-"`
	Format      string `gorm:"size:16;not null" json:"format"`
	Path        string `gorm:"size:512;not null" json:"path"`
}

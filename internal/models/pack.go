package models

import "time"

// PackResult describes a finished migration pack archive.
type PackResult struct {
	// ID is the identifier of the run and the name of its working directory.
	ID string `json:"id"`

	// FilePath is the absolute or output-root-relative path of the archive.
	FilePath string `json:"file_path"`

	// FileName is the base name of the archive.
	FileName string `json:"file_name"`

	// Size is the archive size in bytes.
	Size int64 `json:"size"`

	// Documents counts the XML documents written into data/, configuration
	// documents included.
	Documents int `json:"documents"`

	// PublishedURL is set when the archive was uploaded to object storage.
	PublishedURL string `json:"published_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// PackRequest is the optional body of a make-pack call. An empty body asks
// for the configured defaults.
type PackRequest struct {
	// Publish overrides whether the archive is uploaded after it is built.
	// Nil keeps the configured behaviour.
	Publish *bool `json:"publish,omitempty"`

	// Reason is recorded in the run log.
	Reason string `json:"reason,omitempty" validate:"max=200"`
}

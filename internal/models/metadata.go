// Package models contains the data records produced by a fetch run.
package models

// Metadata is the JSON sidecar written next to every downloaded image.
// It is created once per successful download and never mutated.
type Metadata struct {
	Source          string `json:"source"`
	Description     string `json:"description"`
	Wavelength      string `json:"wavelength"`
	Filepath        string `json:"filepath"`
	DownloadTime    string `json:"download_time"`
	ImageURL        string `json:"image_url"`
	Method          string `json:"method"`
	LastModified    string `json:"last_modified,omitempty"`
	ObservationDate string `json:"observation_date,omitempty"`
	RequestedDate   string `json:"requested_date,omitempty"`
}

// Result records the outcome of one batch item.
type Result struct {
	Source    string
	ImagePath string
	MetaPath  string
	Err       error
}

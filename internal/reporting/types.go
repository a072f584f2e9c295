package reporting

// Export describes one scheduled export as returned by the reporting API
type Export struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Status      string `json:"status,omitempty"`
	DateCreated string `json:"dateCreated"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// FileName is the local file name the export is saved under
func (e Export) FileName() string {
	return e.Name + ".csv"
}

// CreatedDay returns the YYYY-MM-DD prefix of DateCreated
func (e Export) CreatedDay() string {
	if len(e.DateCreated) < len(dayLayout) {
		return e.DateCreated
	}
	return e.DateCreated[:len(dayLayout)]
}

type exportsResponse struct {
	Entities []Export `json:"entities"`
}

// Selection is the outcome of matching exports against a day and allowlist
type Selection struct {
	// Eligible exports are downloaded.
	Eligible []Export
	// OutsideAllowlist were created on the day but are not wanted.
	OutsideAllowlist []Export
	// MissingURL match the day and allowlist but have nothing to download yet.
	MissingURL []Export
}

// Result summarizes one exporter run
type Result struct {
	Day        string
	Listed     int
	Selected   int
	Downloaded int
	Failed     int
}

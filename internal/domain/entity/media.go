package entity

// VideoMeta carries the metadata the pipeline needs from the extractor.
type VideoMeta struct {
	VideoID  string
	Title    string
	Uploader string
	Duration float64 // seconds
}

// Media is the result of fetching a bookmark's video: a plain-text
// transcript when subtitles exist, otherwise the path of the extracted
// audio file. Either field may be empty, but not both for a usable fetch.
type Media struct {
	Transcript string
	AudioPath  string
	Meta       VideoMeta
}

// VisualCue is a candidate timestamp proposed by the language model:
// a point in the video likely to show a high-value visual (chart, list,
// step). Reason is free text used for filenames and logging only.
type VisualCue struct {
	TargetTime float64 `json:"timestamp"`
	Reason     string  `json:"reason"`
}

// SelectedFrame is the single best-scoring decoded frame chosen to
// represent one visual cue, persisted as a JPEG.
type SelectedFrame struct {
	BestTime float64
	Reason   string
	FilePath string
}

package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile      string
	InputFile    string
	OutputPrefix string
	Archive      bool
	ListModels   bool
	Quiet        bool

	// Part selection, parts are numbered from 1
	NumParts  int
	StartPart int
	EndPart   int // 0 means the last part

	// Detection and translation
	Detector      string
	Provider      string
	Model         string
	BeamWidth     int
	MinConfidence float64
	CacheDB       string
	Rate          float64

	// Logging
	LogLevel  string
	LogFormat string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		InputFile:     "india_training_merged_filtered.json",
		OutputPrefix:  "translated_part_",
		NumParts:      20,
		StartPart:     1,
		Detector:      "lingua",
		Provider:      "openai",
		BeamWidth:     10,
		MinConfidence: 0.5,
		Rate:          2,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

package models

// Settings represents the application configuration
type Settings struct {
	UI     UISettings     `yaml:"ui"`
	Editor EditorSettings `yaml:"editor"`
	AI     AISettings     `yaml:"ai"`
}

// UISettings controls UI preferences
type UISettings struct {
	Theme       string `yaml:"theme"`        // glamour style name, e.g. "dark", "light", "notty"
	ShowPreview bool   `yaml:"show_preview"` // render pane visible at startup
	SyncScroll  bool   `yaml:"sync_scroll"`  // keep editor and preview aligned
}

// EditorSettings controls editor preferences
type EditorSettings struct {
	TabWidth        int  `yaml:"tab_width"`
	ShowLineNumbers bool `yaml:"show_line_numbers"`
	WordWrap        bool `yaml:"word_wrap"`
}

// AISettings configures the writing assistant. The assistant is usable
// only when Enabled is true and both APIURL and APIKey are set.
type AISettings struct {
	APIURL  string `yaml:"api_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Enabled bool   `yaml:"enabled"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		UI: UISettings{
			Theme:       "dark",
			ShowPreview: true,
			SyncScroll:  true,
		},
		Editor: EditorSettings{
			TabWidth:        4,
			ShowLineNumbers: true,
			WordWrap:        true,
		},
		AI: AISettings{
			APIURL:  "",
			APIKey:  "",
			Model:   "gpt-4o-mini",
			Enabled: false,
		},
	}
}

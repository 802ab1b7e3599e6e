package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultSortKey   SortKey   `json:"default_sort_key"`
	DefaultAlgorithm Algorithm `json:"default_algorithm"`
	DefaultSeed      int64     `json:"default_seed"`
	DefaultContainer Size      `json:"default_container"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultSortKey:   defaults.SortKey,
		DefaultAlgorithm: defaults.Algorithm,
		DefaultSeed:      defaults.Seed,
		DefaultContainer: Size{Width: 1000, Height: 1000},
		RecentProjects:   []string{},
		Theme:            "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into a PackSettings struct.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	s.SortKey = c.DefaultSortKey
	if c.DefaultAlgorithm != "" {
		s.Algorithm = c.DefaultAlgorithm
	}
	if c.DefaultSeed != 0 {
		s.Seed = c.DefaultSeed
	}
}

// AddRecentProject moves path to the front of the recent list, keeping at
// most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProjects = recent
}

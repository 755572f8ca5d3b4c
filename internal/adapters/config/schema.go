package config

// Settingsfile represents the structure of the lessbuild.yaml settings file.
// Pointer fields distinguish an explicit false from an absent key.
type Settingsfile struct {
	Version           string   `yaml:"version"`
	Engine            string   `yaml:"engine"`
	Autoprefixer      *bool    `yaml:"autoprefixer"`
	DeveloperMode     *bool    `yaml:"devel"`
	SourceMaps        *bool    `yaml:"source_maps"`
	Watch             *bool    `yaml:"watch"`
	ImportDirectories []string `yaml:"import_directories"`
	Root              string   `yaml:"root"`
	OutputDir         string   `yaml:"output_dir"`
	PublicPath        string   `yaml:"public_path"`
	Theme             string   `yaml:"theme"`
	Cache             CacheDTO `yaml:"cache"`
	ProcessTimeout    string   `yaml:"process_timeout"`
	Listen            string   `yaml:"listen"`
}

// CacheDTO represents the cache section of the settings file.
type CacheDTO struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
	Size    int    `yaml:"size"`
}

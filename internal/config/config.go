package config

// Config is the top-level configuration parsed from disktriage YAML.
type Config struct {
	Tools          Tools   `yaml:"tools"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	OutputDir      string  `yaml:"output_dir"`
	HTML           HTML    `yaml:"html"`
	Serve          Serve   `yaml:"serve"`
	Archive        Archive `yaml:"archive"`
}

// Tools names the Sleuth Kit binaries to invoke; full paths are allowed.
type Tools struct {
	Mmls   string `yaml:"mmls"`
	Fsstat string `yaml:"fsstat"`
	Fls    string `yaml:"fls"`
	Istat  string `yaml:"istat"`
	Icat   string `yaml:"icat"`
}

// HTML caps the size of sections in the rendered report document.
type HTML struct {
	MaxFileRows    int `yaml:"max_file_rows"`
	MaxFSInfoChars int `yaml:"max_fsinfo_chars"`
}

// Serve configures the local report browser.
type Serve struct {
	Port int `yaml:"port"`
}

// Archive configures the S3-compatible evidence store.
type Archive struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Default returns the fully populated default configuration. Archive
// credentials have no defaults and must come from the config file.
func Default() Config {
	return Config{
		Tools: Tools{
			Mmls:   "mmls",
			Fsstat: "fsstat",
			Fls:    "fls",
			Istat:  "istat",
			Icat:   "icat",
		},
		TimeoutSeconds: 300,
		OutputDir:      "forensic_output",
		HTML: HTML{
			MaxFileRows:    100,
			MaxFSInfoChars: 2000,
		},
		Serve: Serve{Port: 8080},
		Archive: Archive{
			Bucket: "disktriage-evidence",
		},
	}
}

package constants

const (
	Version        = `0.1.0`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `/.eagle/`
	DataFile       = `data.yaml`
	LogFile        = `eagle.log`

	// Gallery view registration.
	ViewType        = `eagle-gallery`
	ViewDisplayText = `Eagle`
	ViewIcon        = `sync`
)

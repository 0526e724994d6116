package version

var (
	Version = "v0.1.0"

	Meta = "dev"
)

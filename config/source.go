package config

// Source names the layer a resolved value came from. Layers are applied in
// the order declared here, so a later one wins.
type Source string

const (
	SourceDefault Source = "default"
	SourceGlobal  Source = "global" // ~/.config/releaseflow/config.yaml
	SourceLocal   Source = "local"  // .releaseflow.local.yaml in the git root
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// Where describes s for display, naming the file for the file layers.
func (s Source) Where(r *Resolver) string {
	switch s {
	case SourceGlobal:
		if r.GlobalPath() != "" {
			return string(s) + ": " + r.GlobalPath()
		}
	case SourceLocal:
		if r.LocalPath() != "" {
			return string(s) + ": " + r.LocalPath()
		}
	}
	return string(s)
}

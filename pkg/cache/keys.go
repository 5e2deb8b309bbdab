package cache

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies the snapshot of a chart.
	LayoutKey(chartHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies an encoded snapshot by the hash of its layout key.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the overrides that change a snapshot.
type LayoutKeyOpts struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// ArtifactKeyOpts are the options that change an encoding.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Indent bool   `json:"indent,omitempty"`
}

// DefaultKeyer hashes every key component.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", chartHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

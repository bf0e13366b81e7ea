package domain

// Style is a named instruction text controlling the voice of synthesized output
type Style struct {
	Name         string
	Instructions string
	IsDefault    bool
}

package portal

import "io"

// Renderer describes the template renderer contract the portal fragments
// are produced through.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

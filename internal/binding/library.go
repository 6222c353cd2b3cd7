package binding

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed glib.glsl
var librarySource string

var library = sync.OnceValues(func() (*Reflection, error) {
	return Parse(strings.NewReader(librarySource))
})

// Library returns the declarations of the shading library itself.
// The result is shared; callers must not modify it.
func Library() (*Reflection, error) {
	return library()
}

// LibrarySource returns the annotated header text as shipped.
func LibrarySource() string {
	return librarySource
}

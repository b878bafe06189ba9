package dispatcher

import (
	"strings"
)

// ElementName composes the display name of a kernel element used for
// logging: the element type, followed by the optional name parts.
func ElementName(typ string, names ...string) string {
	name := strings.Join(names, ":")
	if len(name) > 0 {
		return typ + ":" + name
	}
	return typ
}

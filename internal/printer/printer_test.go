package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_NoColorWhenNotTerminal(t *testing.T) {
	var buf strings.Builder
	p := New(false)
	p.Redirect(&buf, false)

	p.Success("resolved %s", "Home")
	p.Warning("under construction")
	p.Failure("no match")
	p.Printf("%s=%s\n", "id", p.Accent("42"))
	p.Println("done")

	assert.Equal(t, "resolved Home\nunder construction\nno match\nid=42\ndone\n", buf.String())
	assert.NotContains(t, buf.String(), "\x1b[")
}

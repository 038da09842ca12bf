package automaton

import (
	"fmt"
	"io"

	"github.com/mailru/easyjson"
)

// Export writes the automaton to w as JSON
func Export(w io.Writer, a *Automaton) error {
	if _, err := easyjson.MarshalToWriter(a, w); err != nil {
		return fmt.Errorf("failed to export automaton: %w", err)
	}
	return nil
}

package guided

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// ApplyPatch applies an RFC 6902 patch of field edits. Only "add" and
// "replace" on top-level "/<field>" paths are accepted; every touched field
// follows the same rules as Edit. The patch is applied atomically.
func (c *Controller) ApplyPatch(patchJSON []byte) error {
	patch, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return fmt.Errorf("failed to decode patch: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	touched := make([]string, 0, len(patch))
	for _, op := range patch {
		kind := op.Kind()
		if kind != "add" && kind != "replace" {
			return fmt.Errorf("unsupported patch operation %q", kind)
		}
		path, err := op.Path()
		if err != nil {
			return fmt.Errorf("invalid patch path: %w", err)
		}
		field := strings.TrimPrefix(path, "/")
		if field == path || strings.Contains(field, "/") {
			return fmt.Errorf("%w: %q", ErrUnknownField, path)
		}
		if err := c.checkEditableLocked(field); err != nil {
			return err
		}
		touched = append(touched, field)
	}

	current, err := json.Marshal(c.values)
	if err != nil {
		return fmt.Errorf("failed to marshal form state: %w", err)
	}
	modified, err := patch.Apply(current)
	if err != nil {
		return fmt.Errorf("failed to apply patch: %w", err)
	}
	var next map[string]string
	if err := json.Unmarshal(modified, &next); err != nil {
		return fmt.Errorf("field values must be strings: %w", err)
	}

	for _, field := range touched {
		c.values[field] = next[field]
		delete(c.errors, field)
	}
	return nil
}

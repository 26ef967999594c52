// Package clipboard provides system clipboard access.
package clipboard

// GetText returns the current clipboard text.
func GetText() (string, error) {
	return getClipboardContent()
}

// SetText replaces the clipboard contents with text. Prior contents are not
// restored; overwrite is permanent.
func SetText(text string) error {
	return setClipboardContent(text)
}

//go:build !darwin

package clipboard

import "errors"

var errUnsupported = errors.New("clipboard: unsupported platform")

func getClipboardContent() (string, error) {
	return "", errUnsupported
}

func setClipboardContent(_ string) error {
	return errUnsupported
}

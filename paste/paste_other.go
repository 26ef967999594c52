//go:build !darwin

package paste

import "errors"

func sendPasteKeystroke() error {
	return errors.New("paste: unsupported platform")
}

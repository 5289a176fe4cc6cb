//go:build windows

package paste

import "github.com/micmonay/keybd_event"

func platformInit() error { return nil }

func platformPaste() error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	kb.SetKeys(keybd_event.VK_V)
	kb.HasCTRL(true)
	return kb.Launching()
}

// Package doctor runs interactive system diagnostics.
package doctor

import (
	"fmt"
	"time"

	"github.com/Hexalyse/jean-albert/clipboard"
	"github.com/Hexalyse/jean-albert/config"
	"github.com/Hexalyse/jean-albert/hotkey"
	"github.com/Hexalyse/jean-albert/keymap"
	"github.com/Hexalyse/jean-albert/paste"
)

// Run executes the diagnostic checks and returns an exit code
// (0=all pass, 1=any fail).
func Run() int {
	fmt.Println("jean-albert doctor - system diagnostics")
	fmt.Println("=======================================")

	allPass := true

	cfg := checkConfig()
	if cfg == nil {
		allPass = false
	}
	if allPass && !checkClipboard() {
		allPass = false
	}
	if allPass && !checkPaste() {
		allPass = false
	}
	if allPass && !checkHotkey(cfg) {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkConfig() *config.Config {
	fmt.Println()
	fmt.Println("[1/4] Configuration")

	cfg, path, err := config.Load()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return nil
	}
	trigger, _ := cfg.TriggerCombo()
	exit, _ := cfg.ExitCombo()
	fmt.Printf("  PASS: %s (trigger %s, exit %s)\n", path, trigger, exit)

	if _, promptPath := config.LoadPrompt(); promptPath != "" {
		fmt.Printf("  PASS: prompt loaded from %s\n", promptPath)
	} else {
		fmt.Println("  INFO: no prompt.txt found, using the built-in prompt")
	}
	return cfg
}

func checkClipboard() bool {
	fmt.Println()
	fmt.Println("[2/4] Clipboard round trip")

	clip := clipboard.System{}
	prev, _ := clip.Read()

	marker := fmt.Sprintf("jean-albert-doctor-%d", time.Now().UnixNano())
	if err := clip.Write(marker); err != nil {
		fmt.Printf("  FAIL: clipboard write: %v\n", err)
		return false
	}
	got, err := clip.Read()
	if err != nil {
		fmt.Printf("  FAIL: clipboard read: %v\n", err)
		return false
	}
	// Put the user's clipboard back regardless of outcome.
	clip.Write(prev)

	if got != marker {
		fmt.Printf("  FAIL: read back %q, want %q\n", got, marker)
		return false
	}
	fmt.Println("  PASS: clipboard round trip")
	return true
}

func checkPaste() bool {
	fmt.Println()
	fmt.Println("[3/4] Paste injection device")

	if err := (paste.System{}).Init(); err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Println("  PASS: paste device ready")
	return true
}

func checkHotkey(cfg *config.Config) bool {
	fmt.Println()
	fmt.Println("[4/4] Combo detection")

	trigger, _ := cfg.TriggerCombo()
	exit, _ := cfg.ExitCombo()

	if msg, err := hotkey.Diagnose(); err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	} else {
		fmt.Printf("  INFO: %s\n", msg)
	}

	listener := hotkey.New(trigger, exit)
	if err := listener.Register(); err != nil {
		fmt.Printf("  FAIL: could not start listener: %v\n", err)
		return false
	}
	defer listener.Unregister()

	fmt.Printf("  Press %s within 10 seconds...\n", trigger)
	select {
	case kind := <-listener.Matches():
		if kind != keymap.KindTrigger {
			fmt.Printf("  FAIL: matched %s combo instead of trigger\n", kind)
			return false
		}
		fmt.Println("  PASS: trigger combo detected")
		return true
	case <-time.After(10 * time.Second):
		fmt.Println("  FAIL: timeout waiting for combo")
		return false
	}
}

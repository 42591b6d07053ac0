package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
)

// Clipboard is the optional side channel a command is delivered to. A nil
// Clipboard means none is available.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// PresentCommand prints the generated command and, when a clipboard is
// supplied, attempts best-effort delivery. Clipboard failure is reported as a
// note and never changes the outcome of the call.
func PresentCommand(command string, clip Clipboard) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Println("\nGenerated command:")
	fmt.Printf("  %s\n\n", command)

	if clip == nil {
		return
	}

	if err := clip.WriteAll(command); err != nil {
		ShowInfo(fmt.Sprintf("Clipboard unavailable (%v) — copy the command manually.", err))
		return
	}
	ShowSuccess("Copied to clipboard")
}

// CopyCommand retries clipboard delivery on demand, reporting the result.
func CopyCommand(command string, clip Clipboard) {
	if clip == nil {
		ShowInfo("No clipboard available on this system.")
		return
	}
	if err := clip.WriteAll(command); err != nil {
		ShowError(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		return
	}
	ShowSuccess("Command copied to clipboard!")
}

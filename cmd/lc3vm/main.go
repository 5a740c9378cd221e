// Command lc3vm loads one or more LC-3 object images and runs them against
// the host terminal until the machine halts or faults.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	xterm "github.com/charmbracelet/x/term"
	"github.com/davecgh/go-spew/spew"

	"lc3vm/hostio"
	"lc3vm/loader"
	"lc3vm/vmcpu"
)

var faultStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

func main() {
	log.SetFlags(0)

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: lc3vm <image-file> [<image-file> ...]")
		os.Exit(2)
	}

	host := hostio.NewTerminal()
	vm := vmcpu.New(host)

	var origin uint16
	for _, path := range args {
		fp, err := os.Open(path)
		if err != nil {
			log.Fatalf("lc3vm: %s: %v", path, err)
		}
		origin, err = loader.Load(fp, vm.Mem)
		fp.Close()
		if err != nil {
			log.Fatalf("lc3vm: %s: %v", path, err)
		}
	}
	vm.Reg.PC = origin

	restore := func() {}
	if state, err := xterm.MakeRaw(os.Stdin.Fd()); err != nil {
		if host.IsInteractive() {
			fmt.Fprintf(os.Stderr, "lc3vm: raw mode: %v\n", err)
		}
	} else {
		restore = func() { _ = xterm.Restore(os.Stdin.Fd(), state) }
	}
	defer restore()

	for {
		status, err := vm.Step()
		if err != nil {
			reportFault(vm, err)
			restore()
			os.Exit(1)
		}
		if status == vmcpu.Halted {
			break
		}
		if status == vmcpu.HardInterrupt {
			// the host had no character ready for a blocking TRAP; yield
			// briefly so the terminal's background reader can catch up.
			time.Sleep(time.Millisecond)
		}
	}

	restore()
	os.Exit(0)
}

// reportFault dumps the register file and prints a styled diagnostic, but
// only to an interactive host: an embedding host gets silence on stderr, per
// the cooperative-host contract hostio.Device describes.
func reportFault(vm *vmcpu.VM, err error) {
	if !vm.Host.IsInteractive() {
		return
	}
	fmt.Fprintln(os.Stderr, faultStyle.Render(fmt.Sprintf("lc3vm: fault: %v", err)))
	fmt.Fprint(os.Stderr, spew.Sdump(vm.Reg))
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NM711/MIPS-Emulator/log"
	"github.com/NM711/MIPS-Emulator/mips"
	"github.com/NM711/MIPS-Emulator/monitor"
)

var (
	Version = "dev"
	Commit  = "none"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "mipsvm",
		Short: "MIPS I interpreter",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	var (
		entry    uint32
		steps    uint64
		trace    bool
		debug    string
		logLevel string
		dumpRegs bool
	)

	newVM := func(path string) *mips.VM {
		log.InitLogger(logLevel)
		log.EnableModules(debug)

		vm := mips.New(entry)
		if err := vm.LoadFile(path); err != nil {
			log.Error(log.LoaderModule, "load failed", "err", err)
			os.Exit(1)
		}
		return vm
	}

	var runCmd = &cobra.Command{
		Use:   "run <binary>",
		Short: "Load a flat big-endian binary and execute it",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			vm := newVM(args[0])
			vm.SetSyscallHandler(mips.NewConsoleHandler(os.Stdin, os.Stdout))
			if trace {
				vm.SetTracer(mips.NewTracer(os.Stderr))
			}

			var err error
			if steps > 0 {
				err = vm.Run(steps)
			} else {
				err = vm.Execute()
			}
			if err != nil {
				os.Exit(1)
			}
			if dumpRegs {
				printRegisters(vm)
			}
		},
	}
	runCmd.Flags().Uint64Var(&steps, "steps", 0, "maximum instructions to execute (0 = until halted)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "emit a JSON line per executed instruction on stderr")
	runCmd.Flags().BoolVar(&dumpRegs, "dump-regs", false, "print the register file after execution")

	var count int
	var disasmCmd = &cobra.Command{
		Use:   "disasm <binary>",
		Short: "Disassemble a flat binary image",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			vm := newVM(args[0])
			n := count
			if n == 0 {
				n = int(vm.Mem().Size() / mips.InstructionSize)
			}
			lines, err := mips.DisassembleRange(vm.Mem(), entry, n)
			for _, l := range lines {
				fmt.Println(l)
			}
			if err != nil {
				log.Error(log.LoaderModule, "disassembly truncated", "err", err)
				os.Exit(1)
			}
		},
	}
	disasmCmd.Flags().IntVar(&count, "count", 0, "instructions to disassemble (0 = whole image)")

	var monitorCmd = &cobra.Command{
		Use:   "monitor <binary>",
		Short: "Load a binary and debug it interactively",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			vm := newVM(args[0])
			vm.SetSyscallHandler(mips.NewConsoleHandler(os.Stdin, os.Stdout))
			if err := monitor.New(vm, os.Stdout).Run(); err != nil {
				log.Error(log.MonitorModule, "monitor failed", "err", err)
				os.Exit(1)
			}
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mipsvm %s (%s)\n", Version, Commit)
		},
	}

	rootCmd.PersistentFlags().Uint32Var(&entry, "entry", 0, "initial program counter")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log verbosity (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&debug, "debug", "", "comma-separated debug modules (exec,mem,host,loader,monitor or all)")

	rootCmd.AddCommand(runCmd, disasmCmd, monitorCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printRegisters(vm *mips.VM) {
	for i := uint32(0); i < mips.NumRegisters; i++ {
		fmt.Printf("%-5s %08x", mips.RegisterName(i), vm.Reg(i))
		if i%4 == 3 {
			fmt.Println()
		} else {
			fmt.Print("  ")
		}
	}
	fmt.Printf("hi    %08x  lo    %08x  pc    %08x  steps %d\n",
		vm.HI(), vm.LO(), vm.PC(), vm.Steps())
}

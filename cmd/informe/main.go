// Command informe aggregates a per-event match CSV into one row per
// player-match with per-90-minute rates.
//
// Usage:
//
//	informe <archivo_entrada.csv> <archivo_salida.csv>
//
// Columns to group, sum and normalize are read from ./config.json.
package main

import (
	"context"
	"fmt"
	"os"

	// register all backends with the storage factory.
	_ "github.com/MatiasCirillo/automatizacion-informe-partidos/internal/storage/all"
)

const (
	configPath = "config.json"
	usage      = "Uso: informe <archivo_entrada.csv> <archivo_salida.csv>"
)

func main() {
	input, output, ok := parseArgs(os.Args[1:])
	if !ok {
		fmt.Println(usage)
		os.Exit(1)
	}

	err := run(context.Background(), options{
		configPath: configPath,
		input:      input,
		output:     output,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	})
	if err != nil {
		fatalf("%v", err)
	}
}

// parseArgs returns the input and output paths. Extra arguments are ignored.
func parseArgs(args []string) (input, output string, ok bool) {
	if len(args) < 2 {
		return "", "", false
	}
	return args[0], args[1], true
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

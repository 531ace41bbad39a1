package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"solicitation-system/internal/services"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeTable escreve linhas separadas por tabulação alinhadas em colunas.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// stdinConfirmer pergunta no terminal; só "s", "sim", "y" ou "yes"
// confirmam.
func stdinConfirmer(in io.Reader, out io.Writer) services.Confirmer {
	reader := bufio.NewReader(in)
	return services.ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
		fmt.Fprintf(out, "%s [s/N] ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "s", "sim", "y", "yes":
			return true, nil
		}
		return false, nil
	})
}

func confirmerFor(a *app, yes bool) services.Confirmer {
	if yes {
		return services.AlwaysConfirm
	}
	return stdinConfirmer(a.in, a.out)
}

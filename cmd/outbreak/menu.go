package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/epidemics/outbreak"
)

// promptModel asks for a model until a valid choice (its number or its name) is read.
func promptModel(in io.Reader, out io.Writer) (outbreak.Model, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintln(out, "Please choose one of the following models:")
		for i, m := range outbreak.Models {
			fmt.Fprintf(out, "%d. %s\n", i+1, m)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("%w: no model selected", outbreak.ErrInvalidInput)
		}
		choice := strings.TrimSpace(scanner.Text())
		if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(outbreak.Models) {
			return outbreak.Models[n-1], nil
		}
		if m, err := outbreak.ModelFromString(choice); err == nil {
			return m, nil
		}
		fmt.Fprintf(out, "'%s' is not a valid choice.\n", choice)
	}
}

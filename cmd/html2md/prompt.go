// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/html2md/internal/pipeline"
)

// promptResolver returns an OutputResolver that asks the user what to do
// when the output file already exists: overwrite it, write to a
// timestamp-suffixed file instead, or cancel the run. EOF on input counts
// as cancellation.
func promptResolver(in io.Reader, out io.Writer) pipeline.OutputResolver {
	reader := bufio.NewReader(in)
	return func(path string) (pipeline.Resolution, error) {
		fmt.Fprintf(out, "Output file '%s' already exists.\n", path)
		fmt.Fprintln(out, "Options:")
		fmt.Fprintln(out, "1. Overwrite existing file")
		fmt.Fprintln(out, "2. Append timestamp to create new file")
		fmt.Fprintln(out, "3. Cancel operation")

		for {
			fmt.Fprint(out, "Enter your choice (1-3): ")
			line, err := reader.ReadString('\n')
			switch strings.TrimSpace(line) {
			case "1":
				return pipeline.Overwrite, nil
			case "2":
				return pipeline.Rename, nil
			case "3":
				return pipeline.Cancel, nil
			}
			if err != nil {
				return pipeline.Cancel, nil
			}
			fmt.Fprintln(out, "Invalid choice. Please enter 1, 2, or 3.")
		}
	}
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// promptUser displays a message and waits for the user to enter 'y' or 'n'.
// Returns true if the user enters 'y' or 'yes' (case-insensitive), false otherwise.
// An answer without a trailing newline at end of input still counts.
func promptUser(in io.Reader, out io.Writer, message string) (bool, error) {
	fmt.Fprint(out, message)
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || response == "") {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

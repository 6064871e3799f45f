package main

import (
	"os"

	"github.com/yahsan2/jira-csv/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

package main

import (
	"github.com/nicolelily/hyper-files-inspector/cmd"

	_ "github.com/lib/pq"
)

func main() {
	cmd.Execute()
}

//go:build ignore
// +build ignore

package main

import (
	"log"

	confchat "github.com/mithrel/confchat/internal/cli"
	"github.com/spf13/cobra/doc"
)

func main() {
	root := confchat.NewRootCmd()

	if err := doc.GenMarkdownTree(root, "./docs/markdown"); err != nil {
		log.Fatal(err)
	}

	header := &doc.GenManHeader{
		Title:   "CONFCHAT-CLI",
		Section: "1",
	}
	if err := doc.GenManTree(root, header, "./docs/man"); err != nil {
		log.Fatal(err)
	}
}

package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootPage = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

// child command without children
const childPage = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// docsCmd writes a Markdown page for every command
var docsCmd = &cobra.Command{
	Use:    "docs [dir]",
	Short:  "Write Markdown documentation for every command",
	Args:   cobra.MaximumNArgs(1),
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "docs"
		if len(args) > 0 {
			dir = args[0]
		}
		return makeDocs(RootCmd, dir)
	},
}

func init() {
	RootCmd.AddCommand(docsCmd)
}

// makeDocs writes a Markdown file per command, with the YAML headings that
// are required by the just-the-docs theme, to dir
func makeDocs(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to make docs dir %s: %v", dir, err)
	}

	// nav order of each page, by base file name
	order := map[string]int{root.Name(): 0}
	for i, c := range root.Commands() {
		order[root.Name()+"_"+c.Name()] = i
	}

	prepender := func(filename string) string {
		base := pageName(filename)
		if base == root.Name() {
			return fmt.Sprintf(rootPage, root.Name(), 0)
		}
		title := strings.TrimPrefix(base, root.Name()+"_")
		return fmt.Sprintf(childPage, title, root.Name(), order[base])
	}

	linker := func(filename string) string {
		if base := pageName(filename); base != root.Name() {
			return base
		}
		return "/"
	}

	root.DisableAutoGenTag = true
	return doc.GenMarkdownTreeCustom(root, dir, prepender, linker)
}

// pageName is a doc file's name without its directory or extension
func pageName(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, path.Ext(name))
}

package main

import "github.com/admin/astro-core/internal/cli"

func main() {
	cli.Execute()
}

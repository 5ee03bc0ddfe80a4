package main

import "github.com/lu-zhengda/termlanes/internal/cli"

func main() {
	cli.Execute()
}

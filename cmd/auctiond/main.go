package main

import (
	"github.com/auctionlaunch/auctiond/internal/cli"
)

func main() {
	cli.Execute()
}

// Command storefront serves the storefront search API.
//
//	@title			Storefront Search API
//	@version		1.0
//	@description	Product search, relevance ranking, suggestions and popular terms for the storefront catalog.
//	@BasePath		/api/v1
package main

import (
	"os"

	"github.com/tbourn/go-storefront-search/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// Command wikitables scrapes, cleans and saves tables from Wikipedia pages.
package main

import "github.com/gaurav-prasanna/wikitables/cmd"

func main() {
	cmd.Execute()
}

/*
Copyright © 2026 tunaflsh
*/
package main

import "github.com/tunaflsh/external-mods-manager/cmd"

func main() {
	cmd.Execute()
}

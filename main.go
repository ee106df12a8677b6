package main

import "github.com/IDS-Mandujano/electronica-back/cmd"

func main() {
	cmd.Execute()
}

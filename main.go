package main

import "github.com/Octaviomaldonado/GestorClientes/cmd"

func main() {
	cmd.Execute()
}

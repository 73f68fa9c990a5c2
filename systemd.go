package main

import (
	_ "embed"
	"os"
	"text/template"
)

//go:embed ledbar.service
var ledbarServiceEmbed string

type LedbarServiceParams struct {
	BinaryPath string
	User       string
}

// SystemdServiceFile prints a unit file for the running binary to
// stdout, ready to drop into /etc/systemd/system.
func SystemdServiceFile() {
	tmpl := template.New("ledbar.service")
	tmpl, err := tmpl.Parse(ledbarServiceEmbed)
	if err != nil {
		panic(err)
	}

	path, err := os.Executable()
	if err != nil {
		panic(err)
	}

	params := LedbarServiceParams{
		BinaryPath: path,
		User:       "pi",
	}

	err = tmpl.Execute(os.Stdout, params)
	if err != nil {
		panic(err)
	}
}

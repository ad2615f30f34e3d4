// Command schema prints the postgres DDL for every model. It is used as an
// atlas external schema: `atlas schema inspect --url "external://go run ./src/cmd/schema"`.
package main

import (
	"fmt"
	"io"
	"os"
	"staybook/src/models"

	"ariga.io/atlas-provider-gorm/gormschema"
)

func main() {
	stmts, err := gormschema.New("postgres").Load(models.All()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load gorm schema: %v\n", err)
		os.Exit(1)
	}
	io.WriteString(os.Stdout, stmts)
}

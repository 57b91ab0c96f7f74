package main

import (
	"warranty/internal/infra/persistence/model"

	"gorm.io/gen"
)

// Generates typed gorm/gen query helpers for every warranty table.
func main() {
	g := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	g.ApplyBasic(model.All()...)

	g.Execute()
}

package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/travkit/travkit/schema"
)

func main() {
	schemaBytes, err := schema.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	outputPath := filepath.Join("schema", "travis.embedded.schema.json")
	if err := os.WriteFile(outputPath, schemaBytes, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated document schema at %s", outputPath)
}

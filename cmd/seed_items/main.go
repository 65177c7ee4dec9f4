// seed_items genera un script SQL con el inventario inicial a partir de un CSV de artículos
// (name,brand,type,quantity,store[,in_stock]).
//
// Uso: go run ./cmd/seed_items [ruta/items.csv] [charset]
// Por defecto busca items.csv en el directorio actual y lo lee como utf-8.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_items.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/wegesa-api/internal/application/seed"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/importer"
)

func main() {
	csvPath := "items.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	charset := importer.CharsetUTF8
	if len(os.Args) > 2 {
		charset = os.Args[2]
	}

	rows, err := importer.ReadItemsFile(csvPath, charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "El CSV no tiene artículos")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_items.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	entry := time.Now().UTC().Format(time.RFC3339)
	fmt.Fprintf(out, "-- Inventario inicial generado desde %s\n\n", filepath.Base(csvPath))
	out.WriteString("INSERT INTO items (id, name, brand, type, quantity, in_stock, store, date_of_entry) VALUES\n")
	for i, r := range rows {
		store := strings.ToUpper(strings.TrimSpace(r.Store))
		inStock := r.Quantity
		if r.InStock != nil {
			inStock = *r.InStock
		}
		// Mismo id en cada generación: nombre + bodega.
		id := seed.StableID("item", strings.ToLower(strings.TrimSpace(r.Name))+"@"+store)
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', '%s', %d, %d, '%s', '%s')%s\n",
			id, escapeSQL(r.Name), escapeSQL(r.Brand), escapeSQL(r.Type), r.Quantity, inStock, store, entry, sep)
	}
	out.WriteString("ON CONFLICT (id) DO NOTHING;\n")

	fmt.Printf("Generado %s: %d artículos\n", outPath, len(rows))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
